// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"math"
)

const (
	headerSize     = 44
	fmtChunkLength = 16
	// RIFF chunk bytes that precede the payload: "WAVE" + fmt chunk + data chunk header.
	riffOverhead = headerSize - 8
)

// Descriptor holds the layout fields of a canonical WAV header.
type Descriptor struct {
	Format          Format
	FormatTag       uint16
	NumChannels     int
	SampleRate      int
	BitDepth        int
	BytesPerSample  int
	BlockAlign      int
	ByteRate        uint32
	DataByteLength  uint32
	RIFFChunkLength uint32
}

// NewDescriptor derives the header fields for frames frames of audio.
func NewDescriptor(numChannels, sampleRate, frames int, f Format) (Descriptor, error) {
	if !f.valid() {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if numChannels < 1 || numChannels > 2 {
		return Descriptor{}, fmt.Errorf("%w: %d channels", ErrUnsupportedChannelLayout, numChannels)
	}
	if sampleRate < 1 || uint64(sampleRate) > math.MaxUint32 {
		return Descriptor{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if frames < 0 {
		return Descriptor{}, fmt.Errorf("%w: negative frame count %d", ErrSizeOverflow, frames)
	}

	bytesPerSample := f.BytesPerSample()
	blockAlign := numChannels * bytesPerSample

	// frames above MaxUint32 cannot fit anyway and would overflow the product.
	if uint64(frames) > math.MaxUint32 {
		return Descriptor{}, fmt.Errorf("%w: %d frames", ErrSizeOverflow, frames)
	}
	dataLen := uint64(frames) * uint64(blockAlign)
	if dataLen+riffOverhead > math.MaxUint32 {
		return Descriptor{}, fmt.Errorf("%w: %d data bytes", ErrSizeOverflow, dataLen)
	}

	byteRate := uint64(sampleRate) * uint64(blockAlign)
	if byteRate > math.MaxUint32 {
		return Descriptor{}, fmt.Errorf("%w: byte rate %d", ErrInvalidSampleRate, byteRate)
	}

	return Descriptor{
		Format:          f,
		FormatTag:       f.Tag(),
		NumChannels:     numChannels,
		SampleRate:      sampleRate,
		BitDepth:        f.BitDepth(),
		BytesPerSample:  bytesPerSample,
		BlockAlign:      blockAlign,
		ByteRate:        uint32(byteRate),
		DataByteLength:  uint32(dataLen),
		RIFFChunkLength: uint32(dataLen + riffOverhead),
	}, nil
}

// Frames is the number of frames the data chunk holds.
func (d Descriptor) Frames() int {
	if d.BlockAlign == 0 {
		return 0
	}

	return int(d.DataByteLength) / d.BlockAlign
}

// FileLength is the size of the complete file: header plus payload.
func (d Descriptor) FileLength() int {
	return headerSize + int(d.DataByteLength)
}
