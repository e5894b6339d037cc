// SPDX-License-Identifier: EPL-2.0

// Package otodevice plays a mixing callback through the system audio output
// using github.com/ebitengine/oto/v3.
//
// oto supports a single context per process, so the first New call fixes the
// sample rate for the rest of the program.
package otodevice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audmix/device"
)

const bytesPerFrame = device.Channels * 2

// errPollInterval is how often a running player is checked for errors.
const errPollInterval = 100 * time.Millisecond

var (
	once       sync.Once
	otoCtx     *oto.Context
	otoRate    int
	otoInitErr error
)

func initContext(sampleRate int, latency time.Duration) error {
	once.Do(func() {
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: device.Channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   latency,
		})
		if otoInitErr == nil {
			<-ready
			otoRate = sampleRate
		}
	})
	if otoInitErr != nil {
		return fmt.Errorf("creating audio context: %w", otoInitErr)
	}
	if otoRate != sampleRate {
		return fmt.Errorf("audio context already runs at %d Hz, cannot switch to %d Hz", otoRate, sampleRate)
	}
	return nil
}

// Device pulls audio from a device.Stream into an oto player.
type Device struct {
	stream       *device.Stream
	bufferFrames int
	logger       *slog.Logger
}

// New opens the system output at sampleRate. bufferFrames sets both the
// callback size and the player's buffer, which bounds the latency.
func New(cb device.Callback, sampleRate, bufferFrames int, logger *slog.Logger) (*Device, error) {
	if sampleRate <= 0 {
		return nil, device.ErrInvalidSampleRate
	}
	if logger == nil {
		logger = slog.Default()
	}

	stream, err := device.NewStream(cb, bufferFrames)
	if err != nil {
		return nil, err
	}

	latency := time.Duration(bufferFrames) * time.Second / time.Duration(sampleRate)
	if err := initContext(sampleRate, latency); err != nil {
		return nil, err
	}

	return &Device{
		stream:       stream,
		bufferFrames: bufferFrames,
		logger:       logger.With("device", "oto", "sampleRate", sampleRate),
	}, nil
}

func (d *Device) Run(ctx context.Context) error {
	player := otoCtx.NewPlayer(d.stream)
	player.SetBufferSize(d.bufferFrames * bytesPerFrame)
	player.Play()
	defer player.Close()

	d.logger.Info("audio output started", "bufferFrames", d.bufferFrames)

	ticker := time.NewTicker(errPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("audio output stopped")
			return nil
		case <-ticker.C:
			if err := player.Err(); err != nil {
				return fmt.Errorf("audio player: %w", err)
			}
			if err := otoCtx.Err(); err != nil {
				return fmt.Errorf("audio context: %w", err)
			}
		}
	}
}
