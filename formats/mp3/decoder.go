// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"fmt"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/stream"
)

// frameBytes holds one decoded MPEG-1 Layer III frame: 1152 stereo frames of
// 16-bit samples.
const frameBytes = 1152 * 4

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type packetReader struct {
	dec mp3Reader
	buf []byte
	pcm []int16
}

func newPacketReader(dec mp3Reader) *packetReader {
	return &packetReader{
		dec: dec,
		buf: make([]byte, frameBytes),
		pcm: make([]int16, frameBytes/2),
	}
}

// ReadPacket returns the samples of at most one MP3 frame. go-mp3 always
// produces 16-bit little-endian stereo.
func (p *packetReader) ReadPacket() ([]int16, error) {
	n, err := p.dec.Read(p.buf)
	samples := n / 2
	for i := range samples {
		p.pcm[i] = int16(binary.LittleEndian.Uint16(p.buf[2*i:]))
	}
	return p.pcm[:samples], err
}

type Decoder struct{}

func (Decoder) Decode(data []byte) (audio.Source, error) {
	if len(data) == 0 {
		return nil, audio.ErrEmptyInput
	}

	dec, err := gomp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return newSource(dec), nil
}

func newSource(dec mp3Reader) *stream.Source {
	return stream.New(newPacketReader(dec), dec.SampleRate(), 2, frameBytes/4)
}
