// SPDX-License-Identifier: EPL-2.0

package wav

import "fmt"

// checkLayout validates channel count and equal frame counts.
func checkLayout(channels [][]float32) error {
	if len(channels) < 1 || len(channels) > 2 {
		return fmt.Errorf("%w: %d channels (want 1 or 2)", ErrUnsupportedChannelLayout, len(channels))
	}

	frames := len(channels[0])
	for i, ch := range channels[1:] {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel 0 has %d frames, channel %d has %d",
				ErrFrameCountMismatch, frames, i+1, len(ch))
		}
	}

	return nil
}

// Interleave merges per-channel samples into frame order
// [c0[0], c1[0], ..., c0[1], c1[1], ...]. Mono input comes back as a copy.
func Interleave(channels [][]float32) ([]float32, error) {
	if err := checkLayout(channels); err != nil {
		return nil, err
	}

	n := len(channels)
	frames := len(channels[0])
	out := make([]float32, frames*n)

	if n == 1 {
		copy(out, channels[0])
		return out, nil
	}

	for c, ch := range channels {
		for f, s := range ch {
			out[f*n+c] = s
		}
	}

	return out, nil
}
