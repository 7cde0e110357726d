// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/pcmwav/audio"
)

// mockMP3Reader simulates the gomp3.Decoder for testing
type mockMP3Reader struct {
	sampleRate int
	data       []byte
	offset     int
	// caps the bytes returned per Read when > 0
	maxRead int
	err     error
}

func newMockReader(rate int, samples ...int16) *mockMP3Reader {
	data := make([]byte, len(samples)*2)
	for i, v := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(v))
	}

	return &mockMP3Reader{sampleRate: rate, data: data}
}

func (m *mockMP3Reader) SampleRate() int { return m.sampleRate }

func (m *mockMP3Reader) Read(buf []byte) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	if m.offset >= len(m.data) {
		return 0, io.EOF
	}

	if m.maxRead > 0 && len(buf) > m.maxRead {
		buf = buf[:m.maxRead]
	}

	n := copy(buf, m.data[m.offset:])
	m.offset += n

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not MP3 data")},
		{"empty", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrNotMP3File) {
				t.Errorf("Decode() error = %v, want ErrNotMP3File", err)
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockReader(44100), sampleRate: 44100}

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadSamples_Conversion(t *testing.T) {
	t.Parallel()

	in := []int16{0, 16384, 32767, -16384, -32768, 8192, -8192, 1}
	want := []float32{0, 0.5, 32767.0 / 32768, -0.5, -1, 0.25, -0.25, 1.0 / 32768}

	src := &source{dec: newMockReader(8000, in...), sampleRate: 8000}

	dst := make([]float32, 16)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(want) {
		t.Fatalf("ReadSamples() = %d, want %d", n, len(want))
	}

	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v, want 0, EOF", n, err)
	}
}

func TestSource_ReadSamples_OddByteReads(t *testing.T) {
	t.Parallel()

	in := []int16{100, -100, 200, -200, 300, -300, 400, -400}

	for _, maxRead := range []int{1, 3, 5, 7} {
		mock := newMockReader(22050, in...)
		mock.maxRead = maxRead

		src := &source{dec: mock, sampleRate: 22050}

		set, err := audio.ReadAll(src)
		if err != nil {
			t.Fatalf("maxRead %d: ReadAll() error = %v", maxRead, err)
		}
		if set.Frames() != len(in)/2 {
			t.Fatalf("maxRead %d: Frames() = %d, want %d", maxRead, set.Frames(), len(in)/2)
		}

		for f := range set.Frames() {
			for c := range 2 {
				want := float32(in[f*2+c]) / 32768
				if got := set.Channels[c][f]; got != want {
					t.Errorf("maxRead %d: channel %d frame %d = %v, want %v", maxRead, c, f, got, want)
				}
			}
		}
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := &source{dec: newMockReader(8000, 1, 2), sampleRate: 8000}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	mock := newMockReader(8000)
	mock.err = io.ErrUnexpectedEOF

	src := &source{dec: mock, sampleRate: 8000}

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_BufferGrows(t *testing.T) {
	t.Parallel()

	in := make([]int16, 10000)
	src := &source{dec: newMockReader(8000, in...), sampleRate: 8000, buf: make([]byte, 16)}

	n, err := src.ReadSamples(make([]float32, len(in)))
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != len(in) {
		t.Errorf("ReadSamples() = %d, want %d", n, len(in))
	}
	if cap(src.buf) < len(in)*2 {
		t.Errorf("cap(buf) = %d, want >= %d", cap(src.buf), len(in)*2)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	in := make([]int16, 44100*2)
	for i := range in {
		in[i] = int16(i)
	}
	dst := make([]float32, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src := &source{dec: newMockReader(44100, in...), sampleRate: 44100, buf: make([]byte, 8192)}
		for {
			_, err := src.ReadSamples(dst)
			if err != nil {
				break
			}
		}
	}
}
