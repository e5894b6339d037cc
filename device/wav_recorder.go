// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth  = 16
	formatPCM = 1
)

// WAVRecorder renders the callback as fast as possible into a 16-bit stereo
// WAV file instead of playing it.
type WAVRecorder struct {
	w            io.WriteSeeker
	callback     Callback
	sampleRate   int
	bufferFrames int
	maxFrames    int
	stop         func() bool

	frames int
}

// NewWAVRecorder writes at most maxFrames frames to w; 0 means no limit.
func NewWAVRecorder(w io.WriteSeeker, cb Callback, sampleRate, bufferFrames, maxFrames int) (*WAVRecorder, error) {
	if err := validate(sampleRate, bufferFrames); err != nil {
		return nil, err
	}
	return &WAVRecorder{
		w:            w,
		callback:     cb,
		sampleRate:   sampleRate,
		bufferFrames: bufferFrames,
		maxFrames:    maxFrames,
	}, nil
}

// StopWhen ends the recording after the first buffer for which f reports
// true, for example when a mixer has no sounds left.
func (r *WAVRecorder) StopWhen(f func() bool) *WAVRecorder {
	r.stop = f
	return r
}

// Frames returns how many frames the last Run wrote.
func (r *WAVRecorder) Frames() int { return r.frames }

// Run renders until the frame limit, the stop condition or cancellation,
// then finalizes the WAV headers. Without a limit or stop condition it only
// ends when ctx is cancelled.
func (r *WAVRecorder) Run(ctx context.Context) error {
	enc := wav.NewEncoder(r.w, r.sampleRate, bitDepth, Channels, formatPCM)

	pcm := make([]int16, r.bufferFrames*Channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: Channels, SampleRate: r.sampleRate},
		Data:           make([]int, len(pcm)),
		SourceBitDepth: bitDepth,
	}

	r.frames = 0
	for ctx.Err() == nil {
		n := r.bufferFrames
		if r.maxFrames > 0 {
			n = min(n, r.maxFrames-r.frames)
		}
		if n <= 0 {
			break
		}

		r.callback(pcm[:n*Channels])
		buf.Data = buf.Data[:n*Channels]
		for i, v := range pcm[:n*Channels] {
			buf.Data[i] = int(v)
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav frames: %w", err)
		}
		r.frames += n

		if r.stop != nil && r.stop() {
			break
		}
	}

	if r.frames == 0 {
		// The encoder only writes its headers on the first Write.
		buf.Data = buf.Data[:0]
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav header: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav file: %w", err)
	}
	return nil
}
