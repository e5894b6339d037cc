// SPDX-License-Identifier: EPL-2.0

package audio

// PCMSource plays an in-memory interleaved stereo int16 buffer.
type PCMSource struct {
	data []int16
	pos  int
}

// NewPCMSource wraps interleaved stereo samples. A trailing half frame is
// ignored. The slice is not copied.
func NewPCMSource(data []int16) *PCMSource {
	return &PCMSource{data: data[:len(data)&^1]}
}

func (s *PCMSource) NextSample() (int16, int16) {
	if s.pos >= len(s.data) {
		return 0, 0
	}
	l, r := s.data[s.pos], s.data[s.pos+1]
	s.pos += 2
	return l, r
}

func (s *PCMSource) Done() bool { return s.pos >= len(s.data) }

// Frames is the total number of stereo frames in the buffer.
func (s *PCMSource) Frames() int { return len(s.data) / 2 }

func (s *PCMSource) Channels() int { return 2 }
