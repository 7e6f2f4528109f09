// SPDX-License-Identifier: EPL-2.0

package render

import (
	"image"
	"image/color"
	"math"
)

// DefaultWaveformHeight is the canvas height used when the caller does
// not configure one.
const DefaultWaveformHeight = 200

// WaveformWidth derives the canvas width from the clip duration and the
// spectrogram hop, so waveform and spectrogram tiles share the same
// time-per-pixel and can be stitched side by side.
func WaveformWidth(duration, hopSeconds float64) int {
	if duration <= 0 || hopSeconds <= 0 {
		return 0
	}
	return int(math.Ceil(duration / hopSeconds))
}

// Waveform draws a min/max decimated waveform onto a grayscale canvas of
// the given size. Each column covers a block of samples and is filled
// from the block minimum to the block maximum, so transient peaks
// survive that averaging would smear away. When the clip has fewer
// samples than columns the remaining columns stay silent instead of
// stretching the signal.
func Waveform(samples []float32, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidCanvas
	}

	img := image.NewGray(image.Rect(0, 0, width, height))

	perPixel := len(samples) / width
	if perPixel < 1 {
		perPixel = 1
	}

	peak := 0.0
	for _, s := range samples {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}

	// Symmetric scaling around the center line.
	half := float64(height)/2 - 1
	scale := 0.0
	if peak > 0 {
		scale = half / peak
	}
	center := height / 2

	for x := 0; x < width; x++ {
		lo := x * perPixel
		if lo >= len(samples) {
			break
		}
		hi := lo + perPixel
		if hi > len(samples) {
			hi = len(samples)
		}

		blockMin, blockMax := float64(samples[lo]), float64(samples[lo])
		for _, s := range samples[lo+1 : hi] {
			v := float64(s)
			if v < blockMin {
				blockMin = v
			}
			if v > blockMax {
				blockMax = v
			}
		}

		top := center - int(math.Round(blockMax*scale))
		bottom := center - int(math.Round(blockMin*scale))
		if top < 0 {
			top = 0
		}
		if bottom > height-1 {
			bottom = height - 1
		}
		for y := top; y <= bottom; y++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	return img, nil
}
