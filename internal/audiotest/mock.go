// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides scripted sources for mixer and device tests.
package audiotest

import (
	"sync/atomic"
)

// MockSource is a test helper that produces frames from a generator function.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	totalFrames int // Frames to produce before Done reports true
	produced    int
	waveform    func(frame int) (int16, int16)
	err         error

	// calls counts NextSample invocations, including those after Done.
	calls atomic.Int64
}

// NewMockSource creates a source producing totalFrames frames from waveform.
func NewMockSource(totalFrames int, waveform func(frame int) (int16, int16)) *MockSource {
	return &MockSource{
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewConstantSource creates a mock source that repeats the same frame.
func NewConstantSource(totalFrames int, left, right int16) *MockSource {
	return NewMockSource(totalFrames, func(int) (int16, int16) {
		return left, right
	})
}

// NewRampSource produces frames whose left and right values equal the frame
// index, which makes ordering visible in assertions.
func NewRampSource(totalFrames int) *MockSource {
	return NewMockSource(totalFrames, func(frame int) (int16, int16) {
		return int16(frame), int16(frame)
	})
}

// NewEndlessSource never reports Done.
func NewEndlessSource(left, right int16) *MockSource {
	return NewConstantSource(-1, left, right)
}

// FailAfter makes the source end with err once it has produced frames frames.
func (m *MockSource) FailAfter(frames int, err error) *MockSource {
	m.totalFrames = frames
	m.err = err
	return m
}

func (m *MockSource) NextSample() (int16, int16) {
	m.calls.Add(1)
	if m.Done() {
		return 0, 0
	}
	l, r := m.waveform(m.produced)
	m.produced++
	return l, r
}

func (m *MockSource) Done() bool {
	return m.totalFrames >= 0 && m.produced >= m.totalFrames
}

// Err returns the configured failure once the source is exhausted.
func (m *MockSource) Err() error {
	if !m.Done() {
		return nil
	}
	return m.err
}

// Calls reports how many times NextSample was called.
func (m *MockSource) Calls() int { return int(m.calls.Load()) }

// Produced reports how many non-silent frames were handed out.
func (m *MockSource) Produced() int { return m.produced }
