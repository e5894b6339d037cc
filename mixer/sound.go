// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/audmix/audio"
)

const (
	MaxVolume  uint8 = 255
	DefaultPan uint8 = 255
)

// Sound is one playing instance of a source. It is created by Mixer.Play or
// Mixer.PlayFadeIn and stays valid after the mixer drops it.
type Sound struct {
	mtx sync.Mutex

	src     audio.Source
	volume  uint8
	pan     uint8
	fade    FadeKind
	ramp    uint32
	counter uint32

	destroyed bool

	id     uuid.UUID
	logger *slog.Logger
}

func newSound(src audio.Source, volume uint8, logger *slog.Logger) *Sound {
	id := uuid.New()
	return &Sound{
		src:    src,
		volume: volume,
		pan:    DefaultPan,
		id:     id,
		logger: logger.With("sound", id.String()),
	}
}

// FadeOut starts lowering the volume from its current value, one step every
// FadeRamp(d) frames. The sound is destroyed once the volume has stayed at 0
// for one more ramp. It replaces any fade in progress.
func (s *Sound) FadeOut(d time.Duration) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.fade = FadeOut
	s.ramp = FadeRamp(d)
	s.counter = 0
}

// Destroy stops the sound. The next mixing pass skips and removes it.
func (s *Sound) Destroy() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.destroyed = true
}

func (s *Sound) SetVolume(v uint8) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.volume = v
}

// SetPan sets the stereo position: 0 is full left, 255 full right.
func (s *Sound) SetPan(p uint8) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.pan = p
}

func (s *Sound) Volume() uint8 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.volume
}

func (s *Sound) Pan() uint8 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.pan
}

func (s *Sound) Fade() FadeKind {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.fade
}

// Destroyed reports whether the sound has stopped, by Destroy, by a completed
// fade-out or because its source ran out.
func (s *Sound) Destroyed() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.destroyed
}

func (s *Sound) ID() uuid.UUID { return s.id }

// Err returns the decode fault that ended the source early, if the source
// reports one.
func (s *Sound) Err() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return sourceErr(s.src)
}

func sourceErr(src audio.Source) error {
	if er, ok := src.(audio.ErrorReporter); ok {
		return er.Err()
	}
	return nil
}

// next produces the sound's contribution to one output frame. ok is false
// when the sound is destroyed and contributes nothing.
func (s *Sound) next() (left, right int16, ok bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.destroyed {
		return 0, 0, false
	}
	if s.src.Done() {
		s.destroyed = true
		return 0, 0, false
	}

	s.advanceFade()

	rawL, rawR := s.src.NextSample()
	gl, gr := channelGains(s.volume, s.pan)
	return scale(rawL, gl), scale(rawR, gr), true
}

// advanceFade moves the fade state machine one frame forward.
func (s *Sound) advanceFade() {
	switch s.fade {
	case FadeIn:
		s.counter++
		if s.counter >= s.ramp {
			if s.volume == MaxVolume {
				s.fade = NoFade
			} else {
				s.volume++
			}
			s.counter = 0
		}
	case FadeOut:
		s.counter++
		if s.counter >= s.ramp {
			if s.volume == 0 {
				s.destroyed = true
				s.fade = NoFade
			} else {
				s.volume--
			}
			s.counter = 0
		}
	}
}
