// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into an [audio.Source] using
// github.com/go-audio/aiff.
//
// Signed integer PCM at 8, 16, 24 and 32 bits is normalized to float32 by
// dividing by the full-scale magnitude of the bit depth. go-audio needs an
// io.ReadSeeker; plain readers are buffered in memory first.
//
// # Errors
//
//   - ErrNotAiffFile: the FORM/AIFF header is missing
//   - ErrUnsupportedBitDepth: any other sample size
//   - ErrUnsupportedAiffLayout: no usable COMM chunk
package aiff
