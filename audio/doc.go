// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decode-side building blocks used before
// encoding.
//
// This package contains:
//   - Source interface for decoded PCM input
//   - Decoder interface and a Registry keyed by format/extension
//   - SampleSet, fully decoded audio held as one slice per channel
//   - ReadAll, which drains a Source into a SampleSet
//   - Downmix for folding any channel layout into mono
//   - FormatDuration for "mm:ss" / "hh:mm:ss" display strings
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// ReadSamples yields interleaved values; a frame holds one value per
// channel. io.EOF marks the end of the stream.
//
// # Collecting a Stream
//
//	src, _ := decoder.Decode(file)
//	defer src.Close()
//
//	set, err := audio.ReadAll(src)
//	if err != nil {
//	    return err
//	}
//	// set.Channels[0] is the left (or only) channel
//
// ReadAll tolerates frames split across reads but rejects a stream that
// ends in the middle of a frame (ErrPartialFrame).
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("take-3.WAV")
//
// Keys are case-insensitive and a leading dot is ignored.
//
// # Sample Format
//
// Audio samples are float32, nominally in [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Values outside that range are kept as-is here; clamping is the encoder's
// concern.
package audio
