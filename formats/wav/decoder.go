// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/stream"
)

const (
	packetFrames = 512

	formatPCM = 1
)

// pcmReader is an interface for wav.Decoder to allow testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type packetReader struct {
	dec      pcmReader
	bitDepth int
	buf      *goaudio.IntBuffer
	pcm      []int16
}

func newPacketReader(dec pcmReader, sampleRate, channels, bitDepth int) *packetReader {
	size := packetFrames * channels
	return &packetReader{
		dec:      dec,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			Data:   make([]int, size),
		},
		pcm: make([]int16, size),
	}
}

func (p *packetReader) ReadPacket() ([]int16, error) {
	n, err := p.dec.PCMBuffer(p.buf)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, io.EOF
	}
	for i, v := range p.buf.Data[:n] {
		p.pcm[i] = toInt16(v, p.bitDepth)
	}
	return p.pcm[:n], nil
}

// toInt16 scales a decoded PCM value of the given bit depth to 16 bits.
// 8-bit WAV samples are unsigned.
func toInt16(v, bitDepth int) int16 {
	switch bitDepth {
	case 8:
		return int16((v - 128) << 8)
	case 24:
		return int16(v >> 8)
	case 32:
		return int16(v >> 16)
	default:
		return int16(v)
	}
}

// Decoder opens RIFF/WAVE files held in memory.
type Decoder struct{}

func (Decoder) Decode(data []byte) (audio.Source, error) {
	if len(data) == 0 {
		return nil, audio.ErrEmptyInput
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := int(dec.NumChans)
	if channels > 2 {
		return nil, fmt.Errorf("%w: got %d", audio.ErrUnsupportedChannels, channels)
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavChunks
	}

	sampleRate := int(dec.SampleRate)
	return stream.New(newPacketReader(dec, sampleRate, channels, bitDepth), sampleRate, channels, packetFrames), nil
}
