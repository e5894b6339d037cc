// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"strings"
	"sync"
)

// Source produces one stereo sample pair at a time.
//
// NextSample is called from the mixing callback once per output frame, so it
// must do amortized constant work and never block. It never fails: once the
// stream is exhausted Done reports true and NextSample returns silence.
type Source interface {
	// NextSample returns the next (left, right) frame.
	NextSample() (left, right int16)
	// Done reports whether the stream is exhausted. Once true it stays true.
	Done() bool
}

// ErrorReporter is implemented by sources that can end early because of a
// decode fault. Err returns nil when the stream ended normally.
type ErrorReporter interface {
	Err() error
}

// FormatReporter is implemented by sources that know the layout of the
// stream they decode.
type FormatReporter interface {
	SampleRate() int
	Channels() int
}

// Decoder constructs a Source from an in-memory container file.
type Decoder interface {
	Decode(data []byte) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// Register adds d under format. Keys are case-insensitive.
func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Formats lists the registered format keys in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	formats := make([]string, 0, len(r.codecs))
	for f := range r.codecs {
		formats = append(formats, f)
	}
	return formats
}

// Decode looks up the decoder for format and opens data with it.
func (r *Registry) Decode(format string, data []byte) (Source, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	src, err := d.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	return src, nil
}
