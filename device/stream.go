// SPDX-License-Identifier: EPL-2.0

package device

import "encoding/binary"

// Stream adapts a Callback to an io.Reader of signed 16-bit little-endian
// interleaved stereo, the layout pull-based players such as oto expect. It
// never returns io.EOF.
type Stream struct {
	callback Callback
	pcm      []int16
	buf      []byte
	off      int
}

// NewStream returns a reader that calls cb for bufferFrames frames whenever
// its previous buffer has been read.
func NewStream(cb Callback, bufferFrames int) (*Stream, error) {
	if bufferFrames <= 0 {
		return nil, ErrInvalidBuffer
	}
	samples := bufferFrames * Channels
	return &Stream{
		callback: cb,
		pcm:      make([]int16, samples),
		buf:      make([]byte, samples*2),
		off:      samples * 2,
	}, nil
}

func (s *Stream) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if s.off == len(s.buf) {
			s.fill()
		}
		c := copy(p[n:], s.buf[s.off:])
		s.off += c
		n += c
	}
	return n, nil
}

func (s *Stream) fill() {
	s.callback(s.pcm)
	for i, v := range s.pcm {
		binary.LittleEndian.PutUint16(s.buf[2*i:], uint16(v))
	}
	s.off = 0
}
