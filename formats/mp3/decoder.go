// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/pcmwav/audio"
)

// go-mp3 always produces interleaved stereo int16 little-endian PCM.
const (
	outputChannels = 2
	bytesPerSample = 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// odd byte left over from the previous read
	pending    byte
	hasPending bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	start := 0
	if s.hasPending {
		s.buf[0] = s.pending
		s.hasPending = false
		start = 1
	}

	n, err := s.dec.Read(s.buf[start:])
	n += start

	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))) / 32768.0
	}

	if n%bytesPerSample != 0 {
		s.pending = s.buf[n-1]
		s.hasPending = true
	}

	if err != nil && err != io.EOF {
		return samples, fmt.Errorf("%w", err)
	}

	return samples, err
}

// Decoder decodes MPEG-1/2 Layer III streams with go-mp3. The output is
// always stereo; mono files are duplicated into both channels.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	if dec.SampleRate() < 1 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrNotMP3File, dec.SampleRate())
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
