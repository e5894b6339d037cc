// SPDX-License-Identifier: EPL-2.0

// Package audmix is a small real-time stereo mixer for games and tools.
//
// Sounds are decoded lazily from in-memory encoded data, mixed into
// interleaved signed 16-bit stereo frames and handed to an output device.
// Each playing sound has its own volume, pan and linear fade, and the
// mixer saturates instead of wrapping when sounds add up past the int16
// range.
//
// # Packages
//
//   - audio: the Source contract, the decoder Registry and in-memory sources
//   - formats: the bundled decoders (Ogg Vorbis, WAV, MP3, AIFF)
//   - mixer: the Mixer, per-sound controls and fades
//   - device: output devices driven by the mixing callback
//   - soundbank: named sounds loaded from a folder or virtual filesystem
//
// # Quick Start
//
//	reg := formats.NewRegistry()
//	data, _ := os.ReadFile("theme.ogg")
//	src, _ := reg.Decode("ogg", data)
//
//	m := mixer.New(nil)
//	snd := m.PlayFadeIn(src, 2*time.Second)
//
//	dev, _ := otodevice.New(m.Mix, 44100, 1024, nil)
//	go dev.Run(ctx)
//
//	// later
//	snd.FadeOut(time.Second)
//
// # Offline Rendering
//
// RenderStereo16 drives a mixer without a device, which is useful for
// mixdowns and tests:
//
//	pcm := audmix.RenderStereo16(m, 0, 1024)
//	wav.WriteWAV16(file, 44100, 2, pcm)
//
// # Sample Rates
//
// The mixer does not resample. Every source is expected to be at the
// device rate (44100 Hz by default); fade durations are converted to
// frames at 44100 Hz.
package audmix
