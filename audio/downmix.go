// SPDX-License-Identifier: EPL-2.0

package audio

// Downmix averages every channel of set into a single channel. The input is
// left untouched; a mono set comes back as an equal copy.
func Downmix(set *SampleSet) *SampleSet {
	frames := set.Frames()
	mono := make([]float32, frames)

	switch len(set.Channels) {
	case 0:
	case 1:
		copy(mono, set.Channels[0])
	case 2: // Stereo (most common)
		l, r := set.Channels[0], set.Channels[1]
		for f := range frames {
			mono[f] = (l[f] + r[f]) * 0.5
		}
	default:
		inv := float32(1.0) / float32(len(set.Channels))
		for f := range frames {
			sum := float32(0)
			for _, ch := range set.Channels {
				if f < len(ch) {
					sum += ch[f]
				}
			}
			mono[f] = sum * inv
		}
	}

	return &SampleSet{
		Channels:   [][]float32{mono},
		SampleRate: set.SampleRate,
	}
}
