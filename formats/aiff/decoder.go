// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/stream"
)

const packetFrames = 512

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type packetReader struct {
	dec aiffReader
	buf *goaudio.IntBuffer
	pcm []int16
}

func newPacketReader(dec aiffReader, format *goaudio.Format) *packetReader {
	size := packetFrames * format.NumChannels
	return &packetReader{
		dec: dec,
		buf: &goaudio.IntBuffer{
			Format: format,
			Data:   make([]int, size),
		},
		pcm: make([]int16, size),
	}
}

func (p *packetReader) ReadPacket() ([]int16, error) {
	n, err := p.dec.PCMBuffer(p.buf)
	if n == 0 && err == nil {
		return nil, io.EOF
	}
	for i, v := range p.buf.Data[:n] {
		p.pcm[i] = int16(v)
	}
	return p.pcm[:n], err
}

func newSource(dec aiffReader) (*stream.Source, error) {
	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}
	if format.NumChannels < 1 || format.NumChannels > 2 {
		return nil, fmt.Errorf("%w: got %d", audio.ErrUnsupportedChannels, format.NumChannels)
	}

	return stream.New(newPacketReader(dec, format), format.SampleRate, format.NumChannels, packetFrames), nil
}

type Decoder struct{}

func (Decoder) Decode(data []byte) (audio.Source, error) {
	if len(data) == 0 {
		return nil, audio.ErrEmptyInput
	}

	dec := aiff.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()

	if dec.BitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	return newSource(dec)
}
