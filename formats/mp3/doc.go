// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams into an [audio.Source] using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit stereo, so the source reports two channels
// even for mono files. Samples are scaled by 1/32768 into [-1, 1).
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//	set, err := audio.ReadAll(src)
//
// Input that go-mp3 cannot open is reported as ErrNotMP3File.
package mp3
