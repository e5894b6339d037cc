// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding uses github.com/go-audio/wav for RIFF chunk handling.
//
// # Supported Formats
//
// Currently supported:
//   - Integer PCM at 8, 16, 24 and 32 bits
//   - Mono and stereo
//   - Any sample rate
//
// Samples are scaled to 16 bits. Mono files play on both channels.
//
// # Decoding WAV Files
//
//	data, _ := os.ReadFile("hit.wav")
//	src, err := wav.Decoder{}.Decode(data)
//	if err != nil {
//	    // Handle error
//	}
//	m.Play(src)
//
// The source reads one block of frames from the data chunk whenever its
// queue runs empty.
//
// # Writing WAV Files
//
// Use WriteWAV16 to create 16-bit files on any io.Writer:
//
//	samples := []int16{100, -100, 200, -200} // two stereo frames
//	err := wav.WriteWAV16(w, 44100, 2, samples)
//
// # Error Handling
//
// The package defines several sentinel errors:
//   - ErrNotWavFile: The input is not a RIFF/WAVE file
//   - ErrUnsupportedWavLayout: The samples are not integer PCM
//   - ErrUnsupportedBitDepth: The bit depth is not 8, 16, 24 or 32
//   - ErrUnsupportedWavChunks: No data chunk was found
//
// Compare them with errors.Is:
//
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("Not a WAV file")
//	}
package wav
