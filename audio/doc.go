// SPDX-License-Identifier: EPL-2.0

// Package audio defines the sample sources the mixer plays.
//
// This package contains the building blocks shared by the decoders and the
// mixer:
//   - Source interface, one stereo frame at a time
//   - Decoder interface and a format Registry
//   - PCMSource for in-memory interleaved buffers
//   - ToneSource for synthesized sine tones
//
// # Source Interface
//
// A Source has exactly two operations:
//
//	type Source interface {
//	    NextSample() (left, right int16)
//	    Done() bool
//	}
//
// NextSample is called by the mixing callback once per output frame, on the
// goroutine driven by the output device. It must not block and must not fail.
// Exhaustion is reported by Done, never as an error; after Done reports true,
// NextSample returns (0, 0).
//
// Sources that can stop because of a decode fault also implement
// ErrorReporter, so the mixer can tell a broken stream from one that simply
// ended:
//
//	if er, ok := src.(audio.ErrorReporter); ok && er.Err() != nil {
//	    // stream was cut short
//	}
//
// # Format Registry
//
// The registry maps a format key to a Decoder:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	src, err := registry.Decode("wav", data)
//
// formats.NewRegistry returns a registry with every bundled decoder.
//
// # Sample Format
//
// Samples are signed 16-bit PCM. Decoders producing float samples scale them
// with utils.Float32ToInt16. Mono streams are duplicated to both channels;
// streams with more than two channels are rejected with
// ErrUnsupportedChannels.
//
// # Error Handling
//
// Decode returns an error when the container cannot be opened. A Source that
// fails to construct never reaches the mixer.
package audio
