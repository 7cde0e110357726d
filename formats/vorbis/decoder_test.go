// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/internal/audiotest"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	// caps the values returned per Read when > 0
	maxRead int
	err     error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	if m.maxRead > 0 && len(buf) > m.maxRead {
		buf = buf[:m.maxRead]
	}

	n := copy(buf, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func newSource(m *mockOggVorbisReader) *source {
	return &source{dec: m, sampleRate: m.sampleRate, channels: m.channels}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not Ogg Vorbis data")},
		{"empty", nil},
		{"ogg magic only", []byte("OggS")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotOggVorbis) {
				t.Errorf("Decode() error = %v, want ErrNotOggVorbis", err)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 48000, channels: 2})

	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		frames   int
		maxRead  int
	}{
		{"mono", 1, 100, 0},
		{"stereo", 2, 100, 0},
		{"stereo split frames", 2, 100, 3},
		{"5.1", 6, 64, 5},
		{"empty", 2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chans := audiotest.Channels(tt.channels, tt.frames, audiotest.Ramp)
			interleaved := make([]float32, 0, tt.channels*tt.frames)
			for f := range tt.frames {
				for c := range tt.channels {
					interleaved = append(interleaved, chans[c][f])
				}
			}

			src := newSource(&mockOggVorbisReader{
				sampleRate: 44100,
				channels:   tt.channels,
				samples:    interleaved,
				maxRead:    tt.maxRead,
			})

			set, err := audio.ReadAll(src)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}

			if set.Frames() != tt.frames || set.NumChannels() != tt.channels {
				t.Fatalf("got %d ch x %d frames, want %d x %d", set.NumChannels(), set.Frames(), tt.channels, tt.frames)
			}

			for c := range tt.channels {
				if !slices.Equal(set.Channels[c], chans[c]) {
					t.Errorf("channel %d differs", c)
				}
			}
		})
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 1, samples: []float32{1}})

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 1, samples: []float32{0.5}})
	dst := make([]float32, 8)

	if n, err := src.ReadSamples(dst); n != 1 || err != nil {
		t.Fatalf("first ReadSamples() = %d, %v, want 1, nil", n, err)
	}

	if n, err := src.ReadSamples(dst); n != 0 || err != io.EOF {
		t.Errorf("second ReadSamples() = %d, %v, want 0, EOF", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 1, err: io.ErrUnexpectedEOF})

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 44100*2)
	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := newSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples})
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
