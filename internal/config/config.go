// SPDX-License-Identifier: EPL-2.0

// Package config loads audmix settings from defaults, an optional config file
// and AUDMIX_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

const (
	OutputOto  = "oto"
	OutputNull = "null"
	OutputWAV  = "wav"
)

var (
	ErrInvalidSampleRate = errors.New("samplerate must be positive")
	ErrInvalidBuffer     = errors.New("bufferframes must be positive")
	ErrUnknownOutput     = errors.New("unknown output device")
)

type Config struct {
	LogLevel     string
	LogFile      string
	SampleRate   int
	BufferFrames int
	// Output is one of oto, null or wav.
	Output    string
	WAVPath   string
	SoundBank string
}

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("loglevel", "info")
	v.SetDefault("logfile", "")
	v.SetDefault("samplerate", 44100)
	v.SetDefault("bufferframes", 1024)
	v.SetDefault("output", OutputOto)
	v.SetDefault("wavpath", "mix.wav")
	v.SetDefault("soundbank", "")
}

// Load reads configFilePath if it exists. A missing file is not an error and
// leaves the defaults in place; an unreadable or malformed one is.
func Load(configFilePath string) (Config, error) {
	v := viper.New()
	setViperDefaults(v)

	v.SetEnvPrefix("audmix")
	v.AutomaticEnv()

	if configFilePath != "" {
		v.SetConfigFile(configFilePath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("reading config %s: %w", configFilePath, err)
			}
			slog.Info("no config file found", "configFilePath", configFilePath)
		}
	}

	cfg := Config{
		LogLevel:     v.GetString("loglevel"),
		LogFile:      v.GetString("logfile"),
		SampleRate:   v.GetInt("samplerate"),
		BufferFrames: v.GetInt("bufferframes"),
		Output:       strings.ToLower(v.GetString("output")),
		WAVPath:      v.GetString("wavpath"),
		SoundBank:    v.GetString("soundbank"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.BufferFrames <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBuffer, c.BufferFrames)
	}
	if !slices.Contains([]string{OutputOto, OutputNull, OutputWAV}, c.Output) {
		return fmt.Errorf("%w: %q", ErrUnknownOutput, c.Output)
	}
	return nil
}
