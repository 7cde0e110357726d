// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/utils"
)

// Parse reads a mono or stereo PCM16 or float32 WAV file held in memory and splits its
// payload back into channels. Chunks other than "fmt " and "data" are
// skipped, so files with LIST or fact chunks are accepted too.
func Parse(data []byte) (*audio.SampleSet, Descriptor, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, Descriptor{}, ErrNotWavFile
	}

	var (
		d       Descriptor
		haveFmt bool
		payload []byte
	)

	offset := 12
	for offset+8 <= len(data) && payload == nil {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		if size > len(data)-body {
			if id != "data" {
				return nil, Descriptor{}, fmt.Errorf("%w: %q chunk needs %d bytes", ErrTruncated, id, size)
			}
			return nil, Descriptor{}, fmt.Errorf("%w: data chunk needs %d bytes, %d left", ErrTruncated, size, len(data)-body)
		}

		switch id {
		case "fmt ":
			fd, err := parseFmtChunk(data[body : body+size])
			if err != nil {
				return nil, Descriptor{}, err
			}
			d, haveFmt = fd, true
		case "data":
			if !haveFmt {
				return nil, Descriptor{}, fmt.Errorf("%w: data chunk before fmt chunk", ErrUnsupportedWavLayout)
			}
			payload = data[body : body+size]
		}

		// Pad to even boundary.
		offset = body + size + size%2
	}

	if !haveFmt || payload == nil {
		return nil, Descriptor{}, fmt.Errorf("%w: missing fmt or data chunk", ErrUnsupportedWavLayout)
	}
	if len(payload)%d.BlockAlign != 0 {
		return nil, Descriptor{}, fmt.Errorf("%w: %d payload bytes is not a whole number of frames", ErrTruncated, len(payload))
	}

	frames := len(payload) / d.BlockAlign
	final, err := NewDescriptor(d.NumChannels, d.SampleRate, frames, d.Format)
	if err != nil {
		return nil, Descriptor{}, err
	}

	return deinterleave(payload, final), final, nil
}

func parseFmtChunk(b []byte) (Descriptor, error) {
	if len(b) < fmtChunkLength {
		return Descriptor{}, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedWavLayout, len(b))
	}

	tag := binary.LittleEndian.Uint16(b[0:2])
	channels := int(binary.LittleEndian.Uint16(b[2:4]))
	sampleRate := int(binary.LittleEndian.Uint32(b[4:8]))
	bitDepth := binary.LittleEndian.Uint16(b[14:16])

	f, ok := formatFromFmtChunk(tag, bitDepth)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: format tag %d, %d bits", ErrUnsupportedFormat, tag, bitDepth)
	}
	if channels < 1 || channels > 2 {
		return Descriptor{}, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, channels)
	}

	d, err := NewDescriptor(channels, sampleRate, 0, f)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	return d, nil
}

func deinterleave(payload []byte, d Descriptor) *audio.SampleSet {
	frames := d.Frames()
	set := &audio.SampleSet{
		Channels:   make([][]float32, d.NumChannels),
		SampleRate: d.SampleRate,
	}
	for c := range set.Channels {
		set.Channels[c] = make([]float32, frames)
	}

	bps := d.BytesPerSample
	for f := range frames {
		for c := range d.NumChannels {
			b := payload[f*d.BlockAlign+c*bps:]
			if d.Format == Float32 {
				set.Channels[c][f] = math.Float32frombits(binary.LittleEndian.Uint32(b))
			} else {
				set.Channels[c][f] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(b)))
			}
		}
	}

	return set
}
