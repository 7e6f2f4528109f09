// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic clip and file fixtures shared
// by tests across the module.
package audiotest

import (
	"math"
	"os"
	"testing"

	"github.com/trackIT-Systems/sonari-sub000/audio"
	"github.com/trackIT-Systems/sonari-sub000/formats/wav"
)

// Generate builds an interleaved buffer from a per-frame generator.
func Generate(rate, channels, frames int, gen func(frame, channel int) float32) *audio.Buffer {
	data := make([]float32, frames*channels)
	for frame := range frames {
		for ch := range channels {
			data[frame*channels+ch] = gen(frame, ch)
		}
	}
	return &audio.Buffer{Data: data, SampleRate: rate, Channels: channels}
}

// Sine returns a clip with the same sine tone on every channel.
func Sine(rate, channels, frames int, freq float64) *audio.Buffer {
	return Generate(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(frame) / float64(rate)))
	})
}

// Constant returns a clip holding the same value everywhere.
func Constant(rate, channels, frames int, value float32) *audio.Buffer {
	return Generate(rate, channels, frames, func(_, _ int) float32 {
		return value
	})
}

// WriteSineWAV writes a 16-bit PCM sine fixture to path.
func WriteSineWAV(t testing.TB, path string, rate, channels, frames int, freq float64) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer f.Close()

	if err := wav.Write(f, rate, channels, 16, Sine(rate, channels, frames, freq).Data); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}
