// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// setSource replays a SampleSet as an interleaved Source.
type setSource struct {
	set   *SampleSet
	frame int
}

// NewSetSource returns a Source that streams set frame by frame.
func NewSetSource(set *SampleSet) Source {
	return &setSource{set: set}
}

func (s *setSource) SampleRate() int { return s.set.SampleRate }
func (s *setSource) Channels() int   { return s.set.NumChannels() }
func (s *setSource) Close() error    { return nil }

func (s *setSource) ReadSamples(dst []float32) (int, error) {
	channels := s.set.NumChannels()
	frames := s.set.Frames()
	if channels == 0 || s.frame >= frames {
		return 0, io.EOF
	}

	n := min(len(dst)/channels, frames-s.frame)
	for f := range n {
		for c, ch := range s.set.Channels {
			dst[f*channels+c] = ch[s.frame+f]
		}
	}
	s.frame += n

	if s.frame >= frames {
		return n * channels, io.EOF
	}

	return n * channels, nil
}
