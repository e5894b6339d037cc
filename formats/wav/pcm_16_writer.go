// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
)

// canonicalHeader is the 44-byte RIFF/WAVE header of a PCM file with a
// single fmt chunk followed by the data chunk.
type canonicalHeader struct {
	RIFF          [4]byte
	RIFFSize      uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

func newCanonicalHeader(sampleRate, channels, samples int) canonicalHeader {
	const bytesPerSample = 2
	dataSize := uint32(samples * bytesPerSample)
	return canonicalHeader{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:      36 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1,
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * bytesPerSample),
		BlockAlign:    uint16(channels * bytesPerSample),
		BitsPerSample: 8 * bytesPerSample,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

// WriteWAV16 writes a 16-bit PCM WAV at sampleRate. samples are interleaved
// when channels is 2. Unlike the go-audio encoder it needs no io.Seeker,
// so it can stream to pipes and network connections.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 || channels > 2 {
		return fmt.Errorf("%w: got %d", audio.ErrUnsupportedChannels, channels)
	}

	bw := bufio.NewWriterSize(w, 16*1024)

	if err := binary.Write(bw, binary.LittleEndian, newCanonicalHeader(sampleRate, channels, len(samples))); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	var b [2]byte
	for _, s := range samples {
		binary.LittleEndian.PutUint16(b[:], uint16(s))
		if _, err := bw.Write(b[:]); err != nil {
			return fmt.Errorf("writing wav samples: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}
	return nil
}
