// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnknownFormat  = errors.New("unknown audio format")
	ErrPartialFrame   = errors.New("stream ended inside a frame")
	ErrInvalidSource  = errors.New("source reports an invalid layout")
)
