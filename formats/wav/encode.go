// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pcmwav/audio"
)

const (
	// MIMEType is the media type of an encoded buffer.
	MIMEType = "audio/wav"
	// Extension is the file extension, without dot, for an encoded buffer.
	Extension = "wav"
)

// PutHeader writes the 44-byte canonical header for d into dst[:44].
func PutHeader(dst []byte, d Descriptor) {
	_ = dst[headerSize-1]

	// RIFF header (12 bytes)
	copy(dst[0:4], "RIFF")
	binary.LittleEndian.PutUint32(dst[4:8], d.RIFFChunkLength)
	copy(dst[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(dst[12:16], "fmt ")
	binary.LittleEndian.PutUint32(dst[16:20], fmtChunkLength)
	binary.LittleEndian.PutUint16(dst[20:22], d.FormatTag)
	binary.LittleEndian.PutUint16(dst[22:24], uint16(d.NumChannels))
	binary.LittleEndian.PutUint32(dst[24:28], uint32(d.SampleRate))
	binary.LittleEndian.PutUint32(dst[28:32], d.ByteRate)
	binary.LittleEndian.PutUint16(dst[32:34], uint16(d.BlockAlign))
	binary.LittleEndian.PutUint16(dst[34:36], uint16(d.BitDepth))

	// data chunk header (8 bytes)
	copy(dst[36:40], "data")
	binary.LittleEndian.PutUint32(dst[40:44], d.DataByteLength)
}

// Encode serializes set into a complete WAV file: the canonical 44-byte
// header followed by the interleaved payload. Only mono and stereo sets are
// accepted. Nothing is allocated for the output until every check passed.
func Encode(set *audio.SampleSet, f Format) ([]byte, error) {
	data, _, err := EncodeDescriptor(set, f)

	return data, err
}

// EncodeDescriptor is Encode that also returns the Descriptor the header
// was written from.
func EncodeDescriptor(set *audio.SampleSet, f Format) ([]byte, Descriptor, error) {
	if set == nil {
		return nil, Descriptor{}, fmt.Errorf("%w: nil sample set", ErrUnsupportedChannelLayout)
	}
	if !f.valid() {
		return nil, Descriptor{}, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}

	if err := checkLayout(set.Channels); err != nil {
		return nil, Descriptor{}, err
	}

	d, err := NewDescriptor(set.NumChannels(), set.SampleRate, set.Frames(), f)
	if err != nil {
		return nil, Descriptor{}, err
	}

	samples, err := Interleave(set.Channels)
	if err != nil {
		return nil, Descriptor{}, err
	}

	out := make([]byte, d.FileLength())
	PutHeader(out, d)
	QuantizeInto(out[headerSize:], samples, f)

	return out, d, nil
}

// Write encodes set and writes the result to w in a single call.
func Write(w io.Writer, set *audio.SampleSet, f Format) (int64, error) {
	data, err := Encode(set, f)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("%w", err)
	}

	return int64(n), nil
}
