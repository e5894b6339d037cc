// SPDX-License-Identifier: EPL-2.0

// Command audmix plays audio files, or sounds from a sound bank, together
// on one mixer.
//
//	audmix [-fadein 1s] [-fadeout 2s] [-duration 30s] music.ogg rain.wav
//	audmix -bank ./sounds click theme
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/device/otodevice"
	"github.com/ik5/audmix/formats"
	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/internal/logging"
	"github.com/ik5/audmix/mixer"
	"github.com/ik5/audmix/soundbank"
)

const pollInterval = 50 * time.Millisecond

type options struct {
	fadeIn   time.Duration
	fadeOut  time.Duration
	duration time.Duration
	bank     string
	inputs   []string
}

func main() {
	configFilePath := flag.String("configFilePath", "config.yaml", "Set the file path to the config file.")
	fadeIn := flag.Duration("fadein", 0, "Fade every input in over this duration.")
	fadeOut := flag.Duration("fadeout", 0, "Fade every input out over this duration before stopping.")
	duration := flag.Duration("duration", 0, "Stop after this long; 0 plays until every input ends.")
	bank := flag.String("bank", "", "Treat arguments as ids in the sound bank at this folder (overrides the soundbank setting).")
	flag.Parse()

	cfg, err := config.Load(*configFilePath)
	if err != nil {
		slog.Error("error while loading config", "err", err)
		os.Exit(1)
	}

	logFilePointer, err := logging.ConfigureDefaultLogger(cfg.LogLevel, cfg.LogFile, slog.HandlerOptions{})
	if err != nil {
		slog.Error("error while configuring default logger", "err", err)
		os.Exit(1)
	}
	if logFilePointer != nil {
		defer logFilePointer.Close()
	}

	opts := options{
		fadeIn:   *fadeIn,
		fadeOut:  *fadeOut,
		duration: *duration,
		bank:     cfg.SoundBank,
		inputs:   flag.Args(),
	}
	if *bank != "" {
		opts.bank = *bank
	}

	if err := run(cfg, opts); err != nil {
		slog.Error("audmix failed", "err", err)
		if logFilePointer != nil {
			logFilePointer.Close()
		}
		os.Exit(1)
	}
}

func run(cfg config.Config, opts options) error {
	if len(opts.inputs) == 0 {
		return errors.New("no inputs given")
	}

	m := mixer.New(slog.Default())
	sounds, err := start(m, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Output == config.OutputWAV {
		return record(ctx, cfg, opts, m, sounds)
	}
	return play(ctx, cfg, opts, m, sounds)
}

// start decodes every input and starts it on m.
func start(m *mixer.Mixer, opts options) ([]*mixer.Sound, error) {
	open, err := opener(opts.bank)
	if err != nil {
		return nil, err
	}

	sounds := make([]*mixer.Sound, 0, len(opts.inputs))
	for _, in := range opts.inputs {
		src, err := open(in)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", in, err)
		}
		if fr, ok := src.(audio.FormatReporter); ok {
			slog.Debug("decoded input", "input", in, "sampleRate", fr.SampleRate(), "channels", fr.Channels())
		}

		if opts.fadeIn > 0 {
			sounds = append(sounds, m.PlayFadeIn(src, opts.fadeIn))
		} else {
			sounds = append(sounds, m.Play(src))
		}
	}
	return sounds, nil
}

// opener returns a function turning an argument into a Source: a bank id
// when bankDir is set, otherwise a file path.
func opener(bankDir string) (func(string) (audio.Source, error), error) {
	if bankDir != "" {
		bank, err := soundbank.LoadFolder(bankDir)
		if err != nil {
			return nil, err
		}
		return bank.Open, nil
	}

	reg := formats.NewRegistry()
	return func(path string) (audio.Source, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return reg.Decode(formats.FormatOf(path), data)
	}, nil
}

func fadeOutAll(sounds []*mixer.Sound, d time.Duration) {
	for _, s := range sounds {
		s.FadeOut(d)
	}
}

// play runs a real-time device until the duration elapses, every sound ends
// or ctx is cancelled.
func play(ctx context.Context, cfg config.Config, opts options, m *mixer.Mixer, sounds []*mixer.Sound) error {
	var (
		dev device.Device
		err error
	)
	switch cfg.Output {
	case config.OutputNull:
		dev, err = device.NewNullDevice(m.Mix, cfg.SampleRate, cfg.BufferFrames)
	default:
		dev, err = otodevice.New(m.Mix, cfg.SampleRate, cfg.BufferFrames, slog.Default())
	}
	if err != nil {
		return fmt.Errorf("opening %s output: %w", cfg.Output, err)
	}

	devCtx, cancelDev := context.WithCancel(context.Background())
	defer cancelDev()
	devErr := make(chan error, 1)
	go func() { devErr <- dev.Run(devCtx) }()

	waitCtx := ctx
	if opts.duration > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	if err := waitSilent(waitCtx, m, devErr); err != nil {
		return err
	}

	if opts.fadeOut > 0 && m.Len() > 0 {
		slog.Info("fading out", "sounds", m.Len(), "fadeOut", opts.fadeOut)
		fadeOutAll(sounds, opts.fadeOut)

		// Another interrupt skips the fade.
		fadeCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		if err := waitSilent(fadeCtx, m, devErr); err != nil {
			return err
		}
	}

	m.StopAll()
	cancelDev()
	return <-devErr
}

// waitSilent returns nil once m has no sounds or ctx is done, or the device
// error if the device stops first.
func waitSilent(ctx context.Context, m *mixer.Mixer, devErr chan error) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for m.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil
		case err := <-devErr:
			if err == nil {
				err = errors.New("output device stopped")
			}
			return err
		case <-ticker.C:
		}
	}
	return nil
}

// record renders the mix into cfg.WAVPath as fast as possible.
func record(ctx context.Context, cfg config.Config, opts options, m *mixer.Mixer, sounds []*mixer.Sound) error {
	f, err := os.Create(cfg.WAVPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cfg.WAVPath, err)
	}
	defer f.Close()

	maxFrames := int(opts.duration.Seconds() * float64(cfg.SampleRate))
	fadeFrom := maxFrames - int(opts.fadeOut.Seconds()*float64(cfg.SampleRate))

	var rec *device.WAVRecorder
	fading := false
	rec, err = device.NewWAVRecorder(f, m.Mix, cfg.SampleRate, cfg.BufferFrames, maxFrames)
	if err != nil {
		return err
	}
	rec.StopWhen(func() bool {
		if opts.fadeOut > 0 && maxFrames > 0 && !fading && rec.Frames() >= fadeFrom {
			fadeOutAll(sounds, opts.fadeOut)
			fading = true
		}
		return m.Len() == 0
	})

	start := time.Now()
	if err := rec.Run(ctx); err != nil {
		return err
	}
	slog.Info("wrote mix",
		"path", cfg.WAVPath,
		"frames", rec.Frames(),
		"seconds", float64(rec.Frames())/float64(cfg.SampleRate),
		"elapsed", time.Since(start))

	return f.Close()
}
