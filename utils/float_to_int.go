// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp limits x to [-1, 1]. NaN is returned unchanged.
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}

	return x
}

// Float32ToInt16 clamps x and scales it asymmetrically: negative values use
// 32768 so -1.0 reaches math.MinInt16, positive values use 32767 so +1.0
// lands on math.MaxInt16. The result is rounded half away from zero.
// NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	if math.IsNaN(float64(x)) {
		return 0
	}

	s := float64(Clamp(x))
	if s < 0 {
		return int16(math.Round(s * 32768))
	}

	return int16(math.Round(s * 32767))
}

// Int16ToFloat32 is the inverse scaling of Float32ToInt16.
func Int16ToFloat32(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768
	}

	return float32(v) / 32767
}
