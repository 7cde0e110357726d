// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/pcmwav/audio"
)

// pcmReader is an interface for gowav.Decoder to allow testing
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// wavSource streams integer PCM of any bit depth decoded by go-audio/wav.
type wavSource struct {
	dec        pcmReader
	format     *goaudio.Format
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	// 8-bit WAV is unsigned, everything wider is signed.
	var offset int
	var scale float32
	switch s.bitDepth {
	case 8:
		offset, scale = 128, 128.0
	case 24:
		scale = 8388608.0
	case 32:
		scale = 2147483648.0
	default:
		scale = 32768.0
	}

	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]-offset) / scale
	}

	if err != nil {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// Decoder decodes WAV input. PCM16 and IEEE float32 files are read with
// Parse; integer PCM of other bit depths (8, 24, 32) and extensible headers
// go through go-audio/wav.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	set, _, err := Parse(data)
	if err == nil {
		return audio.NewSetSource(set), nil
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		return nil, err
	}

	return decodeIntPCM(bytes.NewReader(data))
}

func decodeIntPCM(rs io.ReadSeeker) (audio.Source, error) {
	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat == tagIEEEFloat {
		return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedWavLayout
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit PCM", ErrUnsupportedFormat, dec.BitDepth)
	}

	return &wavSource{
		dec:        dec,
		format:     format,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
	}, nil
}
