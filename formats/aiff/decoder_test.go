// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/pcmwav/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing
type mockAiffReader struct {
	samples []int
	offset  int
	err     error
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func newSource(channels, bitDepth int, samples []int) *source {
	scale, _ := scaleFor(bitDepth)

	return &source{
		dec:        &mockAiffReader{samples: samples},
		format:     &goaudio.Format{SampleRate: 44100, NumChannels: channels},
		sampleRate: 44100,
		channels:   channels,
		scale:      scale,
	}
}

// onlyReader hides the Seek method of the wrapped reader.
type onlyReader struct{ r io.Reader }

func (o onlyReader) Read(p []byte) (int, error) { return o.r.Read(p) }

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not AIFF data")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotAiffFile) {
				t.Errorf("Decode() error = %v, want ErrNotAiffFile", err)
			}
		})
	}
}

func TestScaleFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits  int
		scale float32
		ok    bool
	}{
		{8, 128, true},
		{16, 32768, true},
		{24, 8388608, true},
		{32, 2147483648, true},
		{12, 0, false},
		{0, 0, false},
	}

	for _, tt := range tests {
		scale, ok := scaleFor(tt.bits)
		if scale != tt.scale || ok != tt.ok {
			t.Errorf("scaleFor(%d) = %v, %v, want %v, %v", tt.bits, scale, ok, tt.scale, tt.ok)
		}
	}
}

func TestSource_ReadSamples_Normalizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		in       []int
		want     []float32
	}{
		{"8-bit", 8, []int{0, 64, -128, -64}, []float32{0, 0.5, -1, -0.5}},
		{"16-bit", 16, []int{0, 16384, -32768, -8192}, []float32{0, 0.5, -1, -0.25}},
		{"24-bit", 24, []int{0, 4194304, -8388608, 2097152}, []float32{0, 0.5, -1, 0.25}},
		{"32-bit", 32, []int{0, 1073741824, -2147483648, -536870912}, []float32{0, 0.5, -1, -0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := newSource(2, tt.bitDepth, tt.in)
			dst := make([]float32, 8)

			n, err := src.ReadSamples(dst)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != len(tt.want) {
				t.Fatalf("ReadSamples() = %d, want %d", n, len(tt.want))
			}
			for i, want := range tt.want {
				if dst[i] != want {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], want)
				}
			}

			if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
				t.Errorf("ReadSamples() at end = %d, %v, want 0, EOF", n, err)
			}
		})
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := newSource(1, 16, []int{1, 2})

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newSource(1, 16, nil)
	src.dec = &mockAiffReader{err: io.ErrUnexpectedEOF}

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestDecoder_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := []int{0, 16384, -16384, 8192, -32768, 32767}
	enc := aiff.NewEncoder(f, 22050, 16, 2)
	err = enc.Write(&goaudio.IntBuffer{
		Data:           in,
		Format:         &goaudio.Format{SampleRate: 22050, NumChannels: 2},
		SourceBitDepth: 16,
	})
	if err != nil {
		t.Fatalf("encoder write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("encoder close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	for name, r := range map[string]io.Reader{
		"seeker":     bytes.NewReader(data),
		"non-seeker": onlyReader{bytes.NewReader(data)},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src, err := Decoder{}.Decode(r)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			defer src.Close()

			set, err := audio.ReadAll(src)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if set.SampleRate != 22050 || set.NumChannels() != 2 || set.Frames() != 3 {
				t.Fatalf("decoded %d ch x %d frames @ %d Hz", set.NumChannels(), set.Frames(), set.SampleRate)
			}

			for i, v := range in {
				want := float32(v) / 32768
				if got := set.Channels[i%2][i/2]; got != want {
					t.Errorf("value %d = %v, want %v", i, got, want)
				}
			}
		})
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int, 44100*2)
	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := newSource(2, 16, samples)
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
