// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of a sample for a frame index and channel.
type Waveform func(frame int, channel int) float32

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int // values generated so far, across channels
	maxRead     int // 0 means fill dst
	waveform    Waveform
	closed      bool
}

// NewMockSource creates a new mock audio source producing totalFrames frames.
func NewMockSource(sampleRate, channels, totalFrames int, waveform Waveform) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, Sine(sampleRate, frequency))
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

// Sine is a waveform of the given frequency, identical on every channel.
func Sine(sampleRate int, frequency float64) Waveform {
	return func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	}
}

// Ramp encodes the position of a value: frame + channel/10.
func Ramp(frame int, channel int) float32 {
	return float32(frame) + float32(channel)/10
}

// Channels renders a waveform into per-channel slices.
func Channels(channels, frames int, waveform Waveform) [][]float32 {
	out := make([][]float32, channels)
	for c := range out {
		out[c] = make([]float32, frames)
		for f := range frames {
			out[c][f] = waveform(f, c)
		}
	}

	return out
}

// WithMaxRead caps the values returned per ReadSamples call, which lets
// tests split frames across reads.
func (m *MockSource) WithMaxRead(n int) *MockSource {
	m.maxRead = n
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Closed() bool    { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	total := m.totalFrames * m.channels
	if m.generated >= total {
		return 0, io.EOF
	}

	n := min(len(dst), total-m.generated)
	if m.maxRead > 0 {
		n = min(n, m.maxRead)
	}

	for i := range n {
		v := m.generated + i
		dst[i] = m.waveform(v/m.channels, v%m.channels)
	}

	m.generated += n
	if m.generated >= total {
		return n, io.EOF
	}

	return n, nil
}
