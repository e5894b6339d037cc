// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ik5/audmix/internal/audiotest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mixFrames runs one pass of n frames and returns the output.
func mixFrames(m *Mixer, n int) []int16 {
	out := make([]int16, n*2)
	m.Mix(out)
	return out
}

func TestChannelGains(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		volume    uint8
		pan       uint8
		wantLeft  int32
		wantRight int32
	}{
		{"default pan full volume", 255, 255, 508, 255},
		{"full left", 255, 0, 255, 512},
		{"midpoint", 255, 128, 255, 255},
		{"just left of midpoint", 255, 127, 255, 257},
		{"silent", 0, 77, 0, 0},
		{"half volume midpoint", 128, 128, 128, 128},
		{"half volume full right", 128, 255, 255, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, r := channelGains(tt.volume, tt.pan)
			if l != tt.wantLeft || r != tt.wantRight {
				t.Errorf("channelGains(%d, %d) = (%d, %d), want (%d, %d)",
					tt.volume, tt.pan, l, r, tt.wantLeft, tt.wantRight)
			}
		})
	}
}

func TestScale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  int16
		gain int32
		want int16
	}{
		{"unity", 1000, 255, 1000},
		{"silent", 1000, 0, 0},
		{"truncates toward zero", -1000, 508, -1992},
		{"saturates high", 20000, 512, math.MaxInt16},
		{"saturates low", -20000, 512, math.MinInt16},
		{"max at unity", math.MaxInt16, 255, math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := scale(tt.raw, tt.gain); got != tt.want {
				t.Errorf("scale(%d, %d) = %d, want %d", tt.raw, tt.gain, got, tt.want)
			}
		})
	}
}

func TestFadeRamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    time.Duration
		want uint32
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Second, 173},
		{2 * time.Second, 346},
		{5780 * time.Microsecond, 1},
		{time.Millisecond, 0},
	}

	for _, tt := range tests {
		if got := FadeRamp(tt.d); got != tt.want {
			t.Errorf("FadeRamp(%v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestMixer_PlayDefaults(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	s := m.Play(audiotest.NewEndlessSource(1000, 1000))

	if s.Volume() != 255 || s.Pan() != 255 || s.Fade() != NoFade {
		t.Fatalf("defaults = vol %d pan %d fade %v, want 255/255/none", s.Volume(), s.Pan(), s.Fade())
	}

	out := mixFrames(m, 4)
	for i := 0; i < len(out); i += 2 {
		// left gain 508, right gain 255
		if out[i] != 1992 || out[i+1] != 1000 {
			t.Fatalf("frame %d = (%d, %d), want (1992, 1000)", i/2, out[i], out[i+1])
		}
	}
}

func TestMixer_FullLeftPanSaturates(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	s := m.Play(audiotest.NewEndlessSource(20000, 20000))
	s.SetPan(0)

	out := mixFrames(m, 1)
	// right gain is 255*255/127 = 512, which would overflow int16
	if out[0] != 20000 || out[1] != math.MaxInt16 {
		t.Errorf("frame = (%d, %d), want (20000, %d)", out[0], out[1], math.MaxInt16)
	}

	s.SetVolume(0)
	out = mixFrames(m, 1)
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("muted frame = (%d, %d), want silence", out[0], out[1])
	}
}

func TestMixer_SumSaturates(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	for _, v := range []int16{30000, 30000, -30000, -30000, -30000} {
		m.Play(audiotest.NewEndlessSource(v, -v)).SetPan(128)
	}

	// Left runs 30000, 32767 (clamped), 2767, -27233, -32768 (clamped).
	// Right runs -30000, -32768 (clamped), -2768, 27232, 32767 (clamped).
	out := mixFrames(m, 1)
	if out[0] != math.MinInt16 || out[1] != math.MaxInt16 {
		t.Errorf("frame = (%d, %d), want (%d, %d)", out[0], out[1], math.MinInt16, math.MaxInt16)
	}
}

func TestMixer_FadeIn(t *testing.T) {
	t.Parallel()

	const ramp = 3
	m := New(discardLogger())
	s := m.PlayFadeIn(audiotest.NewEndlessSource(0, 0), 0)
	s.mtx.Lock()
	s.ramp = ramp
	s.mtx.Unlock()

	if s.Volume() != 0 || s.Fade() != FadeIn {
		t.Fatalf("start = vol %d fade %v, want 0/in", s.Volume(), s.Fade())
	}

	prev := s.Volume()
	for frame := 1; frame <= 255*ramp; frame++ {
		mixFrames(m, 1)
		v := s.Volume()
		if v < prev {
			t.Fatalf("frame %d: volume dropped from %d to %d", frame, prev, v)
		}
		if want := uint8(frame / ramp); v != want {
			t.Fatalf("frame %d: volume = %d, want %d", frame, v, want)
		}
		prev = v
	}
	if s.Volume() != 255 {
		t.Fatalf("volume after %d frames = %d, want 255", 255*ramp, s.Volume())
	}

	mixFrames(m, ramp)
	if s.Fade() != NoFade || s.Volume() != 255 {
		t.Errorf("after final ramp fade = %v vol = %d, want none/255", s.Fade(), s.Volume())
	}
}

func TestMixer_FadeOut(t *testing.T) {
	t.Parallel()

	const (
		startVolume = 10
		ramp        = 3
	)

	m := New(discardLogger())
	src := audiotest.NewEndlessSource(1000, 1000)
	s := m.Play(src)
	s.SetVolume(startVolume)
	s.FadeOut(0)
	s.mtx.Lock()
	s.ramp = ramp
	s.mtx.Unlock()

	if s.Volume() != startVolume {
		t.Fatalf("FadeOut changed volume immediately to %d", s.Volume())
	}

	prev := s.Volume()
	for frame := 1; frame <= startVolume*ramp; frame++ {
		mixFrames(m, 1)
		v := s.Volume()
		if v > prev {
			t.Fatalf("frame %d: volume rose from %d to %d", frame, prev, v)
		}
		prev = v
	}
	if s.Volume() != 0 {
		t.Fatalf("volume after %d frames = %d, want 0", startVolume*ramp, s.Volume())
	}

	mixFrames(m, ramp-1)
	if s.Destroyed() {
		t.Fatal("destroyed before the final ramp elapsed")
	}
	out := mixFrames(m, 1)
	if !s.Destroyed() {
		t.Fatal("not destroyed after the final ramp")
	}
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("final frame = (%d, %d), want silence", out[0], out[1])
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after fade-out, want 0", m.Len())
	}

	calls := src.Calls()
	if calls != (startVolume+1)*ramp {
		t.Errorf("source pulled %d times, want %d", calls, (startVolume+1)*ramp)
	}
	out = mixFrames(m, 8)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d = %d after removal, want 0", i, v)
		}
	}
	if src.Calls() != calls {
		t.Error("removed sound was still pulled")
	}
}

func TestMixer_FadeOutZeroRampStepsEveryFrame(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	s := m.Play(audiotest.NewEndlessSource(1, 1))
	s.SetVolume(5)
	s.FadeOut(0)

	mixFrames(m, 5)
	if s.Volume() != 0 || s.Destroyed() {
		t.Fatalf("after 5 frames vol = %d destroyed = %v, want 0/false", s.Volume(), s.Destroyed())
	}
	mixFrames(m, 1)
	if !s.Destroyed() {
		t.Error("not destroyed one frame after reaching 0")
	}
}

func TestMixer_SourceExhausted(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	src := audiotest.NewConstantSource(3, 100, 100)
	s := m.Play(src)
	m.Play(audiotest.NewEndlessSource(0, 0))

	out := mixFrames(m, 8)
	for i := range 8 {
		want := int16(0)
		if i < 3 {
			want = 100
		}
		if out[2*i+1] != want {
			t.Errorf("frame %d right = %d, want %d", i, out[2*i+1], want)
		}
	}

	if !s.Destroyed() {
		t.Error("exhausted sound not destroyed")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
	if src.Calls() != 3 {
		t.Errorf("exhausted source pulled %d times, want 3", src.Calls())
	}
}

func TestMixer_DestroyRemovesWithinOnePass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(m *Mixer) *Sound
	}{
		{"no fade", func(m *Mixer) *Sound {
			return m.Play(audiotest.NewEndlessSource(500, 500))
		}},
		{"fading in", func(m *Mixer) *Sound {
			return m.PlayFadeIn(audiotest.NewEndlessSource(500, 500), time.Second)
		}},
		{"fading out", func(m *Mixer) *Sound {
			s := m.Play(audiotest.NewEndlessSource(500, 500))
			s.FadeOut(time.Second)
			return s
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := New(discardLogger())
			s := tt.setup(m)
			mixFrames(m, 16)

			s.Destroy()
			out := mixFrames(m, 16)
			for i, v := range out {
				if v != 0 {
					t.Fatalf("sample %d = %d after Destroy, want 0", i, v)
				}
			}
			if m.Len() != 0 {
				t.Errorf("Len() = %d after Destroy, want 0", m.Len())
			}
		})
	}
}

func TestMixer_CompactKeepsOrder(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	a := m.Play(audiotest.NewEndlessSource(0, 0))
	b := m.Play(audiotest.NewEndlessSource(0, 0))
	c := m.Play(audiotest.NewEndlessSource(0, 0))
	d := m.Play(audiotest.NewEndlessSource(0, 0))

	b.Destroy()
	d.Destroy()
	mixFrames(m, 1)

	if len(m.sounds) != 2 || m.sounds[0] != a || m.sounds[1] != c {
		t.Errorf("active set = %v, want [a c]", m.sounds)
	}
}

func TestMixer_StopAll(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	sounds := []*Sound{
		m.Play(audiotest.NewEndlessSource(1, 1)),
		m.PlayFadeIn(audiotest.NewEndlessSource(1, 1), time.Second),
	}

	m.StopAll()
	for i, s := range sounds {
		if !s.Destroyed() {
			t.Errorf("sound %d not destroyed", i)
		}
	}
	mixFrames(m, 1)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestMixer_NilSourceRejected(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	for _, s := range []*Sound{m.Play(nil), m.PlayFadeIn(nil, time.Second)} {
		if !s.Destroyed() {
			t.Error("sound with nil source is not destroyed")
		}
		if s.Err() != nil {
			t.Errorf("Err() = %v, want nil", s.Err())
		}
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}

	// Mixing must not touch the rejected sounds.
	if got := mixFrames(m, 2); !slices.Equal(got, []int16{0, 0, 0, 0}) {
		t.Errorf("Mix() = %v, want silence", got)
	}
}

func TestMixer_OddBuffer(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	m.Play(audiotest.NewEndlessSource(10, 10)).SetPan(128)

	out := []int16{-1, -1, -1, -1, -1}
	m.Mix(out)
	if out[0] != 10 || out[3] != 10 || out[4] != 0 {
		t.Errorf("Mix() = %v, want [10 10 10 10 0]", out)
	}
}

func TestMixer_EmptyOverwritesBuffer(t *testing.T) {
	t.Parallel()

	out := []int16{7, 7, 7, 7}
	New(discardLogger()).Mix(out)
	for i, v := range out {
		if v != 0 {
			t.Errorf("out[%d] = %d, want 0", i, v)
		}
	}
}

func TestMixer_LogsDecodeFault(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := New(logger)
	errCorrupt := errors.New("corrupt page")
	broken := m.Play(audiotest.NewConstantSource(2, 1, 1).FailAfter(2, errCorrupt))
	clean := m.Play(audiotest.NewConstantSource(2, 1, 1))

	mixFrames(m, 4)

	if !errors.Is(broken.Err(), errCorrupt) {
		t.Errorf("Err() = %v, want %v", broken.Err(), errCorrupt)
	}
	if clean.Err() != nil {
		t.Errorf("clean Err() = %v, want nil", clean.Err())
	}

	logs := buf.String()
	if !strings.Contains(logs, "level=WARN") || !strings.Contains(logs, "corrupt page") {
		t.Errorf("missing decode fault warning in logs:\n%s", logs)
	}
	if !strings.Contains(logs, "sound="+broken.ID().String()) {
		t.Errorf("warning does not carry the sound id:\n%s", logs)
	}
	if !strings.Contains(logs, `msg="sound finished" sound=`+clean.ID().String()) {
		t.Errorf("missing debug line for the clean sound:\n%s", logs)
	}
}

func TestMixer_ConcurrentMutation(t *testing.T) {
	t.Parallel()

	m := New(discardLogger())
	stop := make(chan struct{})

	var mixWG sync.WaitGroup
	mixWG.Add(1)
	go func() {
		defer mixWG.Done()
		out := make([]int16, 256)
		for {
			select {
			case <-stop:
				return
			default:
				m.Mix(out)
			}
		}
	}()

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				s := m.PlayFadeIn(audiotest.NewConstantSource(500, int16(g), int16(i)), time.Millisecond)
				switch i % 3 {
				case 0:
					s.FadeOut(0)
				case 1:
					s.Destroy()
				default:
					s.SetPan(uint8(i))
					s.SetVolume(uint8(g * 10))
				}
			}
		}()
	}
	wg.Wait()

	m.StopAll()
	close(stop)
	mixWG.Wait()

	mixFrames(m, 1)
	if m.Len() != 0 {
		t.Errorf("Len() = %d after StopAll, want 0", m.Len())
	}
}

func TestMixer_MixDoesNotAllocate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	m := New(discardLogger())
	for i := range 8 {
		s := m.Play(audiotest.NewEndlessSource(int16(i*100), int16(-i*100)))
		s.SetPan(uint8(i * 30))
	}
	m.PlayFadeIn(audiotest.NewEndlessSource(1, 1), time.Second)
	out := make([]int16, 1024)

	allocs := testing.AllocsPerRun(100, func() {
		m.Mix(out)
	})
	if allocs > 0 {
		t.Errorf("Mix allocated %v times per pass, want 0", allocs)
	}
}

func BenchmarkMixer_Mix(b *testing.B) {
	m := New(discardLogger())
	for i := range 16 {
		m.Play(audiotest.NewEndlessSource(int16(i), int16(i)))
	}
	out := make([]int16, 2048)

	b.ReportAllocs()
	for b.Loop() {
		m.Mix(out)
	}
}
