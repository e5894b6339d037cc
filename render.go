// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"github.com/ik5/audmix/mixer"
)

// RenderStereo16 drives m offline and collects its output as interleaved
// stereo 16-bit PCM.
//
// The mixer is called in chunks of bufferFrames frames until it has no
// active sounds or maxFrames frames have been produced, whichever comes
// first. The last chunk is trimmed so the result never exceeds maxFrames.
// Sounds that end in the middle of a chunk leave silence in the rest of
// that chunk, so the result length is always a multiple of bufferFrames
// unless maxFrames cut it short.
//
// Parameters:
//   - m: the mixer to render; sounds should already be playing on it
//   - maxFrames: upper bound on the rendered length; 0 or less means no bound
//   - bufferFrames: frames per Mix call; values below 1 use 1024
//
// Without a bound, a sound that never ends keeps RenderStereo16 running
// until it is destroyed from another goroutine.
//
// Example:
//
//	m := mixer.New(nil)
//	m.Play(src)
//	pcm := audmix.RenderStereo16(m, 10*44100, 1024)
//	wav.WriteWAV16(file, 44100, 2, pcm)
func RenderStereo16(m *mixer.Mixer, maxFrames, bufferFrames int) []int16 {
	if bufferFrames < 1 {
		bufferFrames = 1024
	}

	buf := make([]int16, bufferFrames*2)
	var out []int16
	if maxFrames > 0 {
		out = make([]int16, 0, min(maxFrames, bufferFrames*64)*2)
	}

	for m.Len() > 0 {
		n := bufferFrames
		if maxFrames > 0 {
			left := maxFrames - len(out)/2
			if left <= 0 {
				break
			}
			n = min(n, left)
		}

		m.Mix(buf[:n*2])
		out = append(out, buf[:n*2]...)
	}

	return out
}
