// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"math"

	"github.com/ik5/pcmwav/utils"
)

// Quantize converts interleaved samples into little-endian payload bytes.
func Quantize(samples []float32, f Format) []byte {
	out := make([]byte, len(samples)*f.BytesPerSample())
	QuantizeInto(out, samples, f)

	return out
}

// QuantizeInto writes the payload for samples into dst and returns the
// number of bytes written. dst must hold len(samples)*f.BytesPerSample().
func QuantizeInto(dst []byte, samples []float32, f Format) int {
	switch f {
	case Float32:
		for i, s := range samples {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(s))
		}
		return len(samples) * 4
	default:
		for i, s := range samples {
			binary.LittleEndian.PutUint16(dst[i*2:], uint16(utils.Float32ToInt16(s)))
		}
		return len(samples) * 2
	}
}
