// SPDX-License-Identifier: EPL-2.0

// Package soundbank loads a set of named sounds from a virtual filesystem
// and starts them on a mixer by id.
//
// At the root of the filesystem there must be a "sounds.json" file listing
// the entries:
//
//	[
//	  {"Id": "click", "Path": "ui/click.wav"},
//	  {"Id": "theme", "Path": "music/theme.ogg", "Format": "ogg"}
//	]
//
// Format is optional; when empty it is taken from the extension of Path.
// Every file is read into memory once and checked by decoding it. Entries
// that cannot be read or decoded are logged and left out of the bank.
// Each Open decodes the stored bytes again, so one entry can be played
// any number of times concurrently.
package soundbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/tools/godoc/vfs"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats"
	"github.com/ik5/audmix/mixer"
)

// IndexFile is the name of the index read from the root of the filesystem.
const IndexFile = "sounds.json"

var (
	// ErrUnknownSound is returned for an id that is not in the bank.
	ErrUnknownSound = errors.New("unknown sound")
	// ErrDuplicateSound is logged when two index entries share an id; the
	// first one wins.
	ErrDuplicateSound = errors.New("duplicate sound id")
)

// Entry is one record of the index file.
type Entry struct {
	Id     string
	Path   string
	Format string
}

type sound struct {
	format string
	data   []byte
}

// Bank holds the encoded bytes of every loaded sound. It is safe for
// concurrent use once loaded.
type Bank struct {
	registry *audio.Registry
	sounds   map[string]sound
}

// LoadFolder loads a bank from a regular folder.
// See Load for more information.
func LoadFolder(folder string) (*Bank, error) {
	return Load(vfs.OS(folder))
}

// Load loads a bank from fileSystem using the bundled decoders and the
// default logger.
func Load(fileSystem vfs.Opener) (*Bank, error) {
	return LoadWith(fileSystem, formats.NewRegistry(), slog.Default())
}

// LoadWith loads a bank from fileSystem, decoding with registry and
// reporting skipped entries to logger.
func LoadWith(fileSystem vfs.Opener, registry *audio.Registry, logger *slog.Logger) (*Bank, error) {
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	entries, err := loadIndex(fileSystem, IndexFile)
	if err != nil {
		return nil, err
	}

	cachedDiskReads := make(map[string][]byte)
	bank := &Bank{
		registry: registry,
		sounds:   make(map[string]sound, len(entries)),
	}

	for _, e := range entries {
		log := logger.With("id", e.Id, "path", e.Path)

		if _, dup := bank.sounds[e.Id]; dup {
			log.Warn("skipping sound", "err", ErrDuplicateSound)
			continue
		}

		format := e.Format
		if format == "" {
			format = formats.FormatOf(e.Path)
		}

		data, ok := cachedDiskReads[e.Path]
		if !ok {
			data, err = readFile(fileSystem, e.Path)
			if err != nil {
				log.Warn("failed to read sound", "err", err)
				continue
			}
			cachedDiskReads[e.Path] = data
		}

		if _, err := registry.Decode(format, data); err != nil {
			log.Warn("failed to decode sound", "format", format, "err", err)
			continue
		}

		bank.sounds[e.Id] = sound{format: format, data: data}
	}

	logger.Info("loaded sound bank",
		"sounds", len(bank.sounds),
		"skipped", len(entries)-len(bank.sounds),
		"elapsed", time.Since(start))

	return bank, nil
}

// Open decodes a fresh Source for id.
func (b *Bank) Open(id string) (audio.Source, error) {
	s, ok := b.sounds[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, id)
	}
	return b.registry.Decode(s.format, s.data)
}

// Play starts id on m at full volume.
func (b *Bank) Play(m *mixer.Mixer, id string) (*mixer.Sound, error) {
	src, err := b.Open(id)
	if err != nil {
		return nil, err
	}
	return m.Play(src), nil
}

// PlayFadeIn starts id on m, fading in over d.
func (b *Bank) PlayFadeIn(m *mixer.Mixer, id string, d time.Duration) (*mixer.Sound, error) {
	src, err := b.Open(id)
	if err != nil {
		return nil, err
	}
	return m.PlayFadeIn(src, d), nil
}

// IDs returns the loaded ids in sorted order.
func (b *Bank) IDs() []string {
	ids := make([]string, 0, len(b.sounds))
	for id := range b.sounds {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of loaded sounds.
func (b *Bank) Len() int { return len(b.sounds) }

func readFile(fs vfs.Opener, path string) (data []byte, err error) {
	file, err := fs.Open(path)
	if err != nil {
		return
	}
	data, err = io.ReadAll(file)
	_ = file.Close()
	return
}

func loadIndex(fs vfs.Opener, path string) (entries []Entry, err error) {
	data, err := readFile(fs, path)
	if err != nil {
		err = fmt.Errorf("failed to open %s: %w", path, err)
		return
	}
	err = json.Unmarshal(data, &entries)
	if err != nil {
		err = fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return
}
