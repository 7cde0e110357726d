// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

const (
	readChunkFrames = 4096
	// consecutive empty reads tolerated before giving up
	maxEmptyReads = 100
)

// ReadAll drains src and splits its interleaved stream into one slice per
// channel. The source is not closed.
func ReadAll(src Source) (*SampleSet, error) {
	channels := src.Channels()
	if channels < 1 || src.SampleRate() < 1 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidSource, channels, src.SampleRate())
	}

	set := &SampleSet{
		Channels:   make([][]float32, channels),
		SampleRate: src.SampleRate(),
	}

	buf := make([]float32, readChunkFrames*channels)
	// values of a frame split across two reads
	var carry []float32
	empty := 0

	for {
		n, err := src.ReadSamples(buf)
		if n == 0 && err == nil {
			empty++
			if empty >= maxEmptyReads {
				return nil, fmt.Errorf("%w", io.ErrNoProgress)
			}
			continue
		}
		empty = 0

		if n > 0 {
			data := buf[:n]
			if len(carry) > 0 {
				data = append(carry, data...)
				carry = nil
			}

			frames := len(data) / channels
			for c := range channels {
				ch := set.Channels[c]
				for f := range frames {
					ch = append(ch, data[f*channels+c])
				}
				set.Channels[c] = ch
			}

			if rest := len(data) % channels; rest != 0 {
				carry = append([]float32(nil), data[len(data)-rest:]...)
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	if len(carry) != 0 {
		return nil, fmt.Errorf("%w: %d trailing values", ErrPartialFrame, len(carry))
	}

	return set, nil
}
