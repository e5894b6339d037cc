// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// Mixer is the set of active sounds. The zero value is not usable; call New.
type Mixer struct {
	mtx    sync.Mutex
	sounds []*Sound

	logger *slog.Logger
}

// New returns an empty mixer. A nil logger uses slog.Default.
func New(logger *slog.Logger) *Mixer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mixer{
		sounds: make([]*Sound, 0, 16),
		logger: logger,
	}
}

// Play starts src at full volume with the default pan. A nil src gives a
// Sound that is already destroyed and never mixed.
func (m *Mixer) Play(src audio.Source) *Sound {
	return m.add(newSound(src, MaxVolume, m.logger))
}

// PlayFadeIn starts src silent and raises the volume to full over d.
func (m *Mixer) PlayFadeIn(src audio.Source, d time.Duration) *Sound {
	s := newSound(src, 0, m.logger)
	s.fade = FadeIn
	s.ramp = FadeRamp(d)
	return m.add(s)
}

func (m *Mixer) add(s *Sound) *Sound {
	if s.src == nil {
		s.destroyed = true
		s.logger.Warn("rejected sound without a source")
		return s
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.sounds = append(m.sounds, s)
	s.logger.Debug("sound started", "volume", s.volume, "fade", s.fade, "ramp", s.ramp)
	return s
}

// Len returns the number of sounds not yet removed by a mixing pass.
func (m *Mixer) Len() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return len(m.sounds)
}

// StopAll destroys every active sound. They are removed by the next pass.
func (m *Mixer) StopAll() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, s := range m.sounds {
		s.Destroy()
	}
}

// Mix fills out with interleaved stereo frames, overwriting its contents. A
// trailing odd sample is set to 0. Sounds that finished during the pass are
// removed afterwards.
func (m *Mixer) Mix(out []int16) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	frames := len(out) / 2
	for i := range frames {
		var left, right int16
		for _, s := range m.sounds {
			l, r, ok := s.next()
			if !ok {
				continue
			}
			left = utils.AddInt16Sat(left, l)
			right = utils.AddInt16Sat(right, r)
		}
		out[2*i] = left
		out[2*i+1] = right
	}
	if len(out)%2 != 0 {
		out[len(out)-1] = 0
	}

	m.compact()
}

// compact drops destroyed sounds, keeping the others in order. The caller
// holds m.mtx.
func (m *Mixer) compact() {
	kept := m.sounds[:0]
	for _, s := range m.sounds {
		if s.Destroyed() {
			m.retire(s)
			continue
		}
		kept = append(kept, s)
	}
	clear(m.sounds[len(kept):])
	m.sounds = kept
}

func (m *Mixer) retire(s *Sound) {
	if err := s.Err(); err != nil {
		s.logger.Warn("sound stopped by decode error", "err", err)
		return
	}
	s.logger.Debug("sound finished")
}
