// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/audmix/utils"
)

// ToneSource synthesizes a sine tone on both channels.
type ToneSource struct {
	sampleRate int
	frequency  float64
	amplitude  float32
	frames     int
	pos        int
}

// NewToneSource returns a tone of frequency Hz lasting frames frames at
// sampleRate. amplitude is in [0, 1].
func NewToneSource(sampleRate int, frequency float64, amplitude float32, frames int) *ToneSource {
	return &ToneSource{
		sampleRate: sampleRate,
		frequency:  frequency,
		amplitude:  amplitude,
		frames:     frames,
	}
}

func (t *ToneSource) NextSample() (int16, int16) {
	if t.pos >= t.frames {
		return 0, 0
	}
	angle := 2 * math.Pi * t.frequency * float64(t.pos) / float64(t.sampleRate)
	v := utils.Float32ToInt16(float32(math.Sin(angle)) * t.amplitude)
	t.pos++
	return v, v
}

func (t *ToneSource) Done() bool { return t.pos >= t.frames }

func (t *ToneSource) SampleRate() int { return t.sampleRate }
func (t *ToneSource) Channels() int   { return 1 }
