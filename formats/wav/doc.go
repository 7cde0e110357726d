// SPDX-License-Identifier: EPL-2.0

// Package wav encodes float audio into canonical WAV buffers and reads them
// back.
//
// # Encoding
//
// Encode turns a per-channel [audio.SampleSet] into a complete RIFF/WAVE
// file held in memory:
//
//	set := audio.NewSampleSet(44100, left, right)
//	data, err := wav.Encode(set, wav.PCM16)
//
// The output is always the 44-byte canonical header (RIFF, "fmt " with a
// 16-byte body, "data") followed by the interleaved payload. Two sample
// formats are produced:
//
//   - PCM16: samples are clamped to [-1, 1] and rounded half away from
//     zero. Negative values scale by 32768, the rest by 32767, so -1 and 1
//     reach the full int16 range. NaN becomes 0.
//   - Float32: IEEE 754 format tag 3, the bit pattern of each sample is
//     stored unchanged.
//
// Only mono and stereo are accepted and every channel must hold the same
// number of frames. Encode fails before allocating the output when the
// layout is wrong or when a size field of the header would not fit in 32
// bits.
//
// The pieces are exported on their own as well: Interleave, Quantize,
// NewDescriptor and PutHeader.
//
// # Reading
//
// Parse is the inverse of Encode for mono and stereo PCM16 and float32
// files. It skips unknown chunks such as LIST.
//
// Decoder implements [audio.Decoder]. It uses Parse where it can and falls
// back to github.com/go-audio/wav for integer PCM at 8, 24 and 32 bits and
// for files with more than two channels.
//
// # Errors
//
// Encoder failures are reported with ErrFrameCountMismatch,
// ErrUnsupportedChannelLayout, ErrSizeOverflow, ErrInvalidSampleRate and
// ErrUnknownFormat. Reader failures use ErrNotWavFile,
// ErrUnsupportedWavLayout, ErrUnsupportedFormat and ErrTruncated. All of
// them are wrapped with context, test them with errors.Is.
package wav
