// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"strings"
)

// Format selects how samples are stored in the data chunk.
type Format int

const (
	// PCM16 stores clamped samples as signed 16-bit integers (format tag 1).
	PCM16 Format = iota + 1
	// Float32 stores samples as IEEE-754 single precision (format tag 3).
	Float32
)

const (
	tagPCM       = 1
	tagIEEEFloat = 3
)

func (f Format) valid() bool { return f == PCM16 || f == Float32 }

// Tag is the value of the fmt chunk's audio format field.
func (f Format) Tag() uint16 {
	if f == Float32 {
		return tagIEEEFloat
	}

	return tagPCM
}

func (f Format) BitDepth() int {
	if f == Float32 {
		return 32
	}

	return 16
}

func (f Format) BytesPerSample() int { return f.BitDepth() / 8 }

func (f Format) String() string {
	switch f {
	case PCM16:
		return "pcm16"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts "pcm16" (or "pcm", "16") and "float32" (or "float", "32").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pcm16", "pcm", "16", "s16le":
		return PCM16, nil
	case "float32", "float", "32", "f32le":
		return Float32, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// formatFromFmtChunk maps a fmt chunk tag/bit depth pair back to a Format.
func formatFromFmtChunk(tag uint16, bitDepth uint16) (Format, bool) {
	switch {
	case tag == tagPCM && bitDepth == 16:
		return PCM16, true
	case tag == tagIEEEFloat && bitDepth == 32:
		return Float32, true
	default:
		return 0, false
	}
}
