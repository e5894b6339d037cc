// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"fmt"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/stream"
	"github.com/ik5/audmix/utils"
	"github.com/jfreymuth/oggvorbis"
)

// packetFrames is the read size in frames. It is smaller than the long block
// of common encoder settings, so each read returns at most one packet.
const packetFrames = 256

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// packetReader converts float packets from the Ogg reader to int16.
type packetReader struct {
	dec    oggReader
	packet []float32
	pcm    []int16
}

func newPacketReader(dec oggReader) *packetReader {
	size := packetFrames * dec.Channels()
	return &packetReader{
		dec:    dec,
		packet: make([]float32, size),
		pcm:    make([]int16, size),
	}
}

// ReadPacket returns the number of interleaved values the Ogg reader
// produced, converted in place into the reusable pcm buffer.
func (p *packetReader) ReadPacket() ([]int16, error) {
	n, err := p.dec.Read(p.packet)
	for i, v := range p.packet[:n] {
		p.pcm[i] = utils.Float32ToInt16(v)
	}
	return p.pcm[:n], err
}

func newSource(dec oggReader) (*stream.Source, error) {
	channels := dec.Channels()
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: got %d", audio.ErrUnsupportedChannels, channels)
	}
	return stream.New(newPacketReader(dec), dec.SampleRate(), channels, packetFrames), nil
}

// Decoder opens Ogg Vorbis files held in memory.
type Decoder struct{}

func (Decoder) Decode(data []byte) (audio.Source, error) {
	if len(data) == 0 {
		return nil, audio.ErrEmptyInput
	}

	dec, err := oggvorbis.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening ogg stream: %w", err)
	}

	return newSource(dec)
}
