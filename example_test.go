// SPDX-License-Identifier: EPL-2.0

package audmix_test

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
)

// Example_mixdown decodes two WAV files, mixes them and writes the result
// as a stereo WAV file.
func Example_mixdown() {
	reg := formats.NewRegistry()

	var a, b bytes.Buffer
	_ = wav.WriteWAV16(&a, 44100, 1, make([]int16, 4410))
	_ = wav.WriteWAV16(&b, 44100, 2, make([]int16, 2*8820))

	m := mixer.New(nil)
	for _, data := range [][]byte{a.Bytes(), b.Bytes()} {
		src, err := reg.Decode("wav", data)
		if err != nil {
			fmt.Println("decode:", err)
			return
		}
		m.Play(src)
	}

	pcm := audmix.RenderStereo16(m, 0, 1024)
	fmt.Println("frames:", len(pcm)/2)

	var out bytes.Buffer
	if err := wav.WriteWAV16(&out, 44100, 2, pcm); err != nil {
		fmt.Println("write:", err)
		return
	}
	fmt.Println("wav bytes:", out.Len())

	// Output:
	// frames: 9216
	// wav bytes: 36908
}

// Example_fadeIn renders the first second of a tone fading in over one
// second.
func Example_fadeIn() {
	m := mixer.New(nil)
	s := m.PlayFadeIn(audio.NewToneSource(44100, 440, 0.5, 44100*5), time.Second)

	pcm := audmix.RenderStereo16(m, 44100, 512)
	fmt.Println("frames:", len(pcm)/2)
	fmt.Println("fading:", s.Fade())

	// Output:
	// frames: 44100
	// fading: in
}
