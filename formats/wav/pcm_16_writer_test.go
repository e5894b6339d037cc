// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/ik5/audmix/audio"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		samples    int
	}{
		{"mono 8kHz", 8000, 1, 5},
		{"stereo 44.1kHz", 44100, 2, 8},
		{"stereo 48kHz empty", 48000, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := new(bytes.Buffer)
			if err := WriteWAV16(buf, tt.sampleRate, tt.channels, make([]int16, tt.samples)); err != nil {
				t.Fatalf("WriteWAV16() error = %v", err)
			}

			data := buf.Bytes()
			if len(data) != 44+tt.samples*2 {
				t.Fatalf("file size = %d, want %d", len(data), 44+tt.samples*2)
			}
			if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
				t.Errorf("markers = %q/%q, want RIFF/WAVE", data[0:4], data[8:12])
			}
			if got := binary.LittleEndian.Uint32(data[4:8]); got != uint32(36+tt.samples*2) {
				t.Errorf("RIFF size = %d, want %d", got, 36+tt.samples*2)
			}
			if got := binary.LittleEndian.Uint16(data[22:24]); got != uint16(tt.channels) {
				t.Errorf("channels = %d, want %d", got, tt.channels)
			}
			if got := binary.LittleEndian.Uint32(data[24:28]); got != uint32(tt.sampleRate) {
				t.Errorf("sample rate = %d, want %d", got, tt.sampleRate)
			}
			if got := binary.LittleEndian.Uint32(data[28:32]); got != uint32(tt.sampleRate*tt.channels*2) {
				t.Errorf("byte rate = %d, want %d", got, tt.sampleRate*tt.channels*2)
			}
			if got := binary.LittleEndian.Uint16(data[32:34]); got != uint16(tt.channels*2) {
				t.Errorf("block align = %d, want %d", got, tt.channels*2)
			}
			if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(tt.samples*2) {
				t.Errorf("data size = %d, want %d", got, tt.samples*2)
			}
		})
	}
}

func TestWriteWAV16_ByteOrder(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 8000, 1, []int16{0x1234, -2}); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	want := []byte{0x34, 0x12, 0xFE, 0xFF}
	if got := buf.Bytes()[44:]; !bytes.Equal(got, want) {
		t.Errorf("sample bytes = % x, want % x", got, want)
	}
}

func TestWriteWAV16_LargeFile(t *testing.T) {
	t.Parallel()

	// Spans several internal write chunks.
	samples := make([]int16, 20000)
	for i := range samples {
		samples[i] = int16(i)
	}

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 44100, 2, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()[44:]
	for _, i := range []int{0, 8191, 8192, 19999} {
		got := int16(binary.LittleEndian.Uint16(data[i*2:]))
		if got != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, got, samples[i])
		}
	}
}

func TestWriteWAV16_UnsupportedChannels(t *testing.T) {
	t.Parallel()

	err := WriteWAV16(new(bytes.Buffer), 44100, 6, nil)
	if !errors.Is(err, audio.ErrUnsupportedChannels) {
		t.Errorf("WriteWAV16() error = %v, want ErrUnsupportedChannels", err)
	}
}

type failingWriter struct{}

var errWriteFailed = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWriteFailed }

func TestWriteWAV16_WriterError(t *testing.T) {
	t.Parallel()

	err := WriteWAV16(failingWriter{}, 44100, 2, []int16{1, 2})
	if !errors.Is(err, errWriteFailed) {
		t.Errorf("WriteWAV16() error = %v, want wrapped errWriteFailed", err)
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 44100*2)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}

	buf := new(bytes.Buffer)
	b.ReportAllocs()
	for b.Loop() {
		buf.Reset()
		_ = WriteWAV16(buf, 44100, 2, samples)
	}
}
