// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF data into a lazily decoded
// audio.Source, using github.com/go-audio/aiff.
//
// Only 16-bit mono or stereo files are accepted; other bit depths fail
// with ErrOnlyPCM16bitSupported. The sample rate is
// reported through audio.FormatReporter but not converted.
//
//	data, _ := os.ReadFile("door.aif")
//	src, err := aiff.Decoder{}.Decode(data)
//	if err != nil {
//	    return err
//	}
//	m.Play(src)
//
// Mono files play the same sample on both channels. A read error part way
// through ends the source early; Err reports it.
package aiff
