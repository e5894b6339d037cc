// SPDX-License-Identifier: EPL-2.0

// Package stream turns a packet-oriented codec reader into an audio.Source
// that decodes lazily, one packet per refill.
package stream

import (
	"errors"
	"io"

	"github.com/ik5/audmix/internal/pairqueue"
)

// maxEmptyPackets bounds consecutive empty packets in one refill before the
// reader is treated as stuck.
const maxEmptyPackets = 100

// PacketReader yields decoded packets as interleaved int16 samples.
//
// ReadPacket returns io.EOF once the stream has no more packets. It may
// return samples together with an error; the samples are still played. The
// returned slice is only valid until the next call.
type PacketReader interface {
	ReadPacket() ([]int16, error)
}

// Source serves sample pairs from a FIFO queue that is refilled from a
// PacketReader whenever it runs empty.
type Source struct {
	r     PacketReader
	queue *pairqueue.Queue

	sampleRate int
	channels   int

	ended bool
	err   error
}

// New wraps r. channels must be 1 or 2; capacity is the expected number of
// frames in one packet.
func New(r PacketReader, sampleRate, channels, capacity int) *Source {
	return &Source{
		r:          r,
		queue:      pairqueue.New(capacity),
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// NextSample pops the oldest queued pair, decoding one more packet first if
// the queue is empty. It returns silence once the stream has ended.
func (s *Source) NextSample() (int16, int16) {
	if !s.fill() {
		return 0, 0
	}
	p, _ := s.queue.Pop()
	return p[0], p[1]
}

// fill reports whether a pair is queued, refilling from the reader while the
// queue is empty and the stream has not ended.
func (s *Source) fill() bool {
	for empty := 0; s.queue.Len() == 0; empty++ {
		if s.ended {
			return false
		}
		if empty >= maxEmptyPackets {
			s.finish(io.ErrNoProgress)
			return false
		}
		s.refill()
	}
	return true
}

func (s *Source) refill() {
	samples, err := s.r.ReadPacket()
	if len(samples) > 0 {
		s.queue.PushInterleaved(samples, s.channels)
	}
	if err != nil {
		s.finish(err)
	}
}

func (s *Source) finish(err error) {
	s.ended = true
	if !errors.Is(err, io.EOF) {
		s.err = err
	}
}

// Done reports whether every pair of the stream has been served. When the
// queue is empty it decodes ahead to find out, so Done turns true right after
// the last real pair instead of one silent pair later.
func (s *Source) Done() bool { return !s.fill() }

// Err returns the decode fault that ended the stream, or nil after a normal
// end.
func (s *Source) Err() error { return s.err }

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
