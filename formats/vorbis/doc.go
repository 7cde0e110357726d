// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams into an [audio.Source] using
// github.com/jfreymuth/oggvorbis.
//
// Vorbis already decodes to float32, so samples pass through unscaled and
// the channel count is whatever the stream declares. Streams with more than
// two channels are left for the caller to fold down, see [audio.Downmix].
package vorbis
