// SPDX-License-Identifier: EPL-2.0

// Package mixer combines any number of playing sounds into one interleaved
// stereo int16 stream.
//
// A Mixer holds the active sounds. Play and PlayFadeIn register a source and
// return a *Sound handle the caller keeps to fade or stop it later:
//
//	m := mixer.New(slog.Default())
//	music := m.PlayFadeIn(src, 2*time.Second)
//	...
//	music.FadeOut(time.Second)
//
// The output device calls Mix once per buffer. Mix must finish before the
// device's deadline, so it never blocks on I/O and does not allocate while
// no sound is being retired.
//
// # Gain and Panning
//
// Volume and pan are 0-255. Per frame, each sound's raw pair is scaled by
//
//	left  = volume * max(pan, 128) / 128
//	right = volume * (255 - min(pan, 128)) / 127
//
// and divided by 255. The two sides use different divisors and the default
// pan is 255, so a freshly played sound is louder on the left (gain 508/255)
// than on the right (255/255). Scaled samples and the running sum saturate at
// the int16 limits.
//
// # Fades
//
// A fade changes the volume by one step every ramp frames, where ramp is
// FadeRamp(d): d spread over the 255 volume steps at 44100 frames per second.
// A fade-in stops at 255. A fade-out that reaches volume 0 destroys the sound
// one ramp later.
//
// # Concurrency
//
// Play, PlayFadeIn, StopAll and Len take the mixer lock and wait for a
// running Mix to finish. Sound methods only take that sound's lock, so
// FadeOut or Destroy never wait for a whole buffer. Changes take effect at
// the next frame that Mix processes for the sound.
package mixer
