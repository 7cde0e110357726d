// SPDX-License-Identifier: EPL-2.0

package audio

import "time"

// SampleSet holds fully decoded audio as one slice per channel.
// Every channel is expected to hold the same number of frames; encoders
// validate this rather than trusting it.
type SampleSet struct {
	Channels   [][]float32
	SampleRate int
}

// NewSampleSet wraps the given channel slices without copying them.
func NewSampleSet(sampleRate int, channels ...[]float32) *SampleSet {
	return &SampleSet{
		Channels:   channels,
		SampleRate: sampleRate,
	}
}

func (s *SampleSet) NumChannels() int { return len(s.Channels) }

// Frames is the length of the first channel, or 0 without channels.
func (s *SampleSet) Frames() int {
	if len(s.Channels) == 0 {
		return 0
	}

	return len(s.Channels[0])
}

// Duration is the playback time of the set at its sample rate.
func (s *SampleSet) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}

	return time.Duration(s.Frames()) * time.Second / time.Duration(s.SampleRate)
}
