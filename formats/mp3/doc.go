// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
//
// # Supported Formats
//
// The decoder supports:
//   - MP3 (MPEG-1 and MPEG-2 Audio Layer 3)
//   - Constant and variable bitrates
//   - Mono and stereo files
//
// go-mp3 always produces 16-bit stereo, so mono files are already duplicated
// to both channels when they reach the mixer.
//
// # Decoding MP3 Files
//
//	data, _ := os.ReadFile("theme.mp3")
//	src, err := mp3.Decoder{}.Decode(data)
//	if err != nil {
//	    // Handle error
//	}
//	m.Play(src)
//
// One MP3 frame is decoded each time the source runs out of queued samples.
// Opening the stream scans the frame headers once to learn the sample rate.
package mp3
