// SPDX-License-Identifier: EPL-2.0

// Package device drives a mixing callback the way an audio output would:
// at a fixed sample rate, two channels, one buffer at a time.
//
// The mixer never calls a device. A device owns the cadence and calls the
// Callback it was given, usually mixer.Mixer.Mix.
package device

import (
	"context"
	"errors"
)

// Channels is the output channel count of every device.
const Channels = 2

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidBuffer     = errors.New("buffer size must be positive")
)

// Callback fills out with interleaved stereo int16 frames.
type Callback func(out []int16)

// Device plays the callback's output until ctx is cancelled or the device
// stops on its own. Run returns nil on cancellation.
type Device interface {
	Run(ctx context.Context) error
}

func validate(sampleRate, bufferFrames int) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if bufferFrames <= 0 {
		return ErrInvalidBuffer
	}
	return nil
}
