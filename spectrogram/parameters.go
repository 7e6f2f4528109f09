// SPDX-License-Identifier: EPL-2.0

package spectrogram

import "math"

// Scale selects how the complex STFT output is reduced to real values.
type Scale string

const (
	// ScaleAmplitude keeps linear magnitudes. Required input for PCEN.
	ScaleAmplitude Scale = "amplitude"
	// ScalePower squares the magnitudes.
	ScalePower Scale = "power"
	// ScalePSD normalizes squared magnitudes to power spectral density.
	ScalePSD Scale = "psd"
)

// Parameters describes one spectrogram request. Immutable once built.
type Parameters struct {
	// WindowSize in samples. Clamped to the available audio with a
	// floor of 64 samples.
	WindowSize int
	// OverlapPercent of consecutive windows, in [0, 100).
	OverlapPercent float64
	// Window function name: hann, hamming, blackman or rectangular.
	Window string
	Scale  Scale
	// MinDB/MaxDB clamp the dB conversion and define the fixed
	// normalization range.
	MinDB float64
	MaxDB float64
	// Relative normalization uses the clip's own extremes instead of
	// the MinDB/MaxDB range.
	Relative bool
	// Channel to analyze; an index beyond the available channels falls
	// back to channel 0.
	Channel int
	// PCEN enables per-channel energy normalization, applied to
	// amplitude-scale data before dB conversion.
	PCEN bool
	// Colormap and Gamma only affect rendering.
	Colormap string
	Gamma    float64
}

// HopSeconds is the stride between analysis frames in seconds, assuming
// the window is not clamped by a short clip. Waveform tiles use it so
// both tile kinds share the same time-per-pixel.
func (p Parameters) HopSeconds(sampleRate int) float64 {
	hop := int(math.Round(float64(p.WindowSize) * (1 - p.OverlapPercent/100)))
	if hop < 1 {
		hop = 1
	}
	return float64(hop) / float64(sampleRate)
}

// DefaultParameters mirrors the UI's initial spectrogram settings.
func DefaultParameters() Parameters {
	return Parameters{
		WindowSize:     1024,
		OverlapPercent: 75,
		Window:         "hann",
		Scale:          ScaleAmplitude,
		MinDB:          -100,
		MaxDB:          0,
		Relative:       true,
		Colormap:       "viridis",
		Gamma:          1,
	}
}
