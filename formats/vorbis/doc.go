// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding for the mixer.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis files.
// Vorbis is a free, open-source lossy audio compression format and the usual
// choice for game sound effects and music.
//
// # Supported Formats
//
// The decoder supports:
//   - Ogg Vorbis (.ogg files)
//   - Variable bitrates
//   - Mono and stereo
//
// Streams with more than two channels are rejected with
// audio.ErrUnsupportedChannels.
//
// # Decoding Vorbis Files
//
// The whole file is held in memory and the source decodes it lazily:
//
//	data, _ := os.ReadFile("music.ogg")
//	src, err := vorbis.Decoder{}.Decode(data)
//	if err != nil {
//	    // the container could not be opened; nothing will play
//	}
//	m.Play(src)
//
// Opening the stream parses the three Vorbis headers only. Audio packets are
// decoded one at a time, the first time the mixer asks for a frame that is
// not queued yet, so the work done in any single mixing callback is bounded
// by one packet.
//
// # Output Format
//
// Each call to NextSample returns one stereo frame of signed 16-bit samples.
// Mono files are played on both channels. Decoded floats are clamped to
// [-1, 1] and scaled by 32767.
//
// # Decode Faults
//
// A corrupt packet ends the stream early instead of stopping playback of
// other sounds. The fault is kept and returned by the source's Err method:
//
//	if er, ok := src.(audio.ErrorReporter); ok && er.Err() != nil {
//	    log.Println("stream cut short:", er.Err())
//	}
package vorbis
