// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"time"

	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/internal/audiotest"
)

// Example_readAll demonstrates draining a decoded stream into per-channel slices.
func Example_readAll() {
	source := audiotest.NewSineSource(16000, 2, 16000, 440.0) // 1 second stereo

	set, err := audio.ReadAll(source)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Channels: %d\n", set.NumChannels())
	fmt.Printf("Frames: %d\n", set.Frames())
	fmt.Printf("Duration: %s\n", audio.FormatDuration(set.Duration()))
	// Output:
	// Channels: 2
	// Frames: 16000
	// Duration: 00:01
}

// Example_downmix demonstrates folding stereo into mono.
func Example_downmix() {
	set := audio.NewSampleSet(8000, []float32{1, 0.5}, []float32{0, 0.5})

	mono := audio.Downmix(set)

	fmt.Printf("Channels: %d\n", mono.NumChannels())
	fmt.Printf("Samples: %v\n", mono.Channels[0])
	// Output:
	// Channels: 1
	// Samples: [0.5 0.5]
}

// Example_formatDuration shows the two duration layouts.
func Example_formatDuration() {
	fmt.Println(audio.FormatDuration(75 * time.Second))
	fmt.Println(audio.FormatDuration(2*time.Hour + 3*time.Minute + 4*time.Second))
	// Output:
	// 01:15
	// 02:03:04
}
