// SPDX-License-Identifier: EPL-2.0

// Package pairqueue holds decoded stereo sample pairs between a codec read
// and the mixer pulling them one at a time.
package pairqueue

// Pair is one stereo frame: left, right.
type Pair [2]int16

// Queue is a FIFO of sample pairs. The backing slice is reused once drained,
// so steady-state pushes of packet-sized batches do not allocate.
type Queue struct {
	pairs []Pair
	head  int
}

// New returns a queue with room for capacity pairs.
func New(capacity int) *Queue {
	return &Queue{pairs: make([]Pair, 0, capacity)}
}

// Len is the number of pairs waiting.
func (q *Queue) Len() int { return len(q.pairs) - q.head }

// Pop removes and returns the front pair. ok is false when the queue is empty.
func (q *Queue) Pop() (p Pair, ok bool) {
	if q.head >= len(q.pairs) {
		return Pair{}, false
	}
	p = q.pairs[q.head]
	q.head++
	if q.head == len(q.pairs) {
		q.Reset()
	}
	return p, true
}

// Push appends one pair.
func (q *Queue) Push(left, right int16) {
	q.pairs = append(q.pairs, Pair{left, right})
}

// PushInterleaved splits interleaved samples into pairs. Mono input is
// duplicated to both sides; a trailing partial frame is dropped. It returns
// the number of pairs pushed.
func (q *Queue) PushInterleaved(samples []int16, channels int) int {
	switch channels {
	case 1:
		for _, s := range samples {
			q.Push(s, s)
		}
		return len(samples)
	case 2:
		frames := len(samples) / 2
		for f := range frames {
			idx := f << 1
			q.Push(samples[idx], samples[idx+1])
		}
		return frames
	default:
		return 0
	}
}

// Reset drops everything queued and keeps the allocation.
func (q *Queue) Reset() {
	q.pairs = q.pairs[:0]
	q.head = 0
}
