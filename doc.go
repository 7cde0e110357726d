// SPDX-License-Identifier: EPL-2.0

// Package pcmwav converts decoded audio into canonical WAV files.
//
// The encoder itself lives in formats/wav and works on float samples held
// in memory. This package ties it to the decoders under formats/ so that a
// file in any supported container can be turned into a WAV buffer in one
// call:
//
//	f, _ := os.Open("speech.mp3")
//	defer f.Close()
//
//	res, err := pcmwav.ConvertReader(pcmwav.DefaultRegistry(), "speech.mp3", f,
//	    pcmwav.WithMono(true))
//	if err != nil {
//	    return err
//	}
//
//	os.WriteFile(res.FileName(), res.Data, 0o644)
//
// # Supported Inputs
//
//   - WAV: PCM 8/16/24/32-bit and IEEE float32 via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF: PCM 8/16/24/32-bit via formats/aiff
//
// # Output
//
// PCM16 by default, Float32 with WithFormat(wav.Float32). Mono and stereo
// inputs keep their layout; inputs with more channels are averaged down to
// mono unless WithFoldSurround(false) is given, in which case they fail with
// wav.ErrUnsupportedChannelLayout. There is no resampling, the sample rate
// of the input is written as is.
//
// A Result carries the encoded bytes together with what a delivery layer
// needs: MIMEType, FileName and a human readable duration.
package pcmwav
