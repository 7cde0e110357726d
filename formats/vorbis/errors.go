// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotOggVorbis indicates the input is not an Ogg Vorbis stream
var ErrNotOggVorbis = errors.New("not an Ogg Vorbis stream")
