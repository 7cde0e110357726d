// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

// Encoder errors. Each one is reported before any output byte is produced.
var (
	ErrFrameCountMismatch       = errors.New("channels have different frame counts")
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")
	ErrSizeOverflow             = errors.New("audio data exceeds the 4 GiB WAV size limit")
	ErrInvalidSampleRate        = errors.New("invalid sample rate")
	ErrUnknownFormat            = errors.New("unknown encoding format")
)

// Reader errors.
var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedFormat    = errors.New("only mono/stereo PCM 16-bit or IEEE float 32-bit supported")
	ErrTruncated            = errors.New("truncated WAV data")
)
