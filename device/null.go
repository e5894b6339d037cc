// SPDX-License-Identifier: EPL-2.0

package device

import (
	"context"
	"time"
)

// NullDevice calls the callback in real time and discards the output. It
// stands in for a sound card on headless hosts.
type NullDevice struct {
	callback     Callback
	bufferFrames int
	period       time.Duration
}

func NewNullDevice(cb Callback, sampleRate, bufferFrames int) (*NullDevice, error) {
	if err := validate(sampleRate, bufferFrames); err != nil {
		return nil, err
	}
	return &NullDevice{
		callback:     cb,
		bufferFrames: bufferFrames,
		period:       time.Duration(bufferFrames) * time.Second / time.Duration(sampleRate),
	}, nil
}

// Period is the time one buffer lasts at the device's sample rate.
func (d *NullDevice) Period() time.Duration { return d.period }

func (d *NullDevice) Run(ctx context.Context) error {
	out := make([]int16, d.bufferFrames*Channels)

	ticker := time.NewTicker(d.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d.callback(out)
		}
	}
}
