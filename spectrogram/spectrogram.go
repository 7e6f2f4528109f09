// SPDX-License-Identifier: EPL-2.0

// Package spectrogram computes STFT-based spectrograms, PCEN denoising,
// dB scaling and normalization for rendering.
package spectrogram

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/trackIT-Systems/sonari-sub000/audio"
)

var (
	ErrInvalidScale  = errors.New("scale must be amplitude, power or psd")
	ErrInvalidWindow = errors.New("unknown window function")
	ErrEmptyBuffer   = errors.New("no samples to analyze")
)

// minWindowSize is the floor applied when clamping the window to short
// clips; below this the frequency resolution is useless.
const minWindowSize = 64

// Spectrogram is the [frequency][time] result of an STFT analysis.
type Spectrogram struct {
	// Data holds one row per frequency bin, DC first, Nyquist last.
	Data       [][]float64
	SampleRate int
	WindowSize int
	HopSize    int
}

// Bins returns the number of frequency rows.
func (s *Spectrogram) Bins() int { return len(s.Data) }

// Columns returns the number of time frames.
func (s *Spectrogram) Columns() int {
	if len(s.Data) == 0 {
		return 0
	}
	return len(s.Data[0])
}

// HopSeconds is the time advance per column.
func (s *Spectrogram) HopSeconds() float64 {
	return float64(s.HopSize) / float64(s.SampleRate)
}

// Frequencies returns the center frequency of every bin, evenly spaced
// from 0 to the Nyquist frequency.
func (s *Spectrogram) Frequencies() []float64 {
	bins := s.Bins()
	out := make([]float64, bins)
	nyquist := float64(s.SampleRate) / 2
	for i := range out {
		out[i] = nyquist * float64(i) / float64(bins-1)
	}
	return out
}

func windowFunc(name string) (func(int) []float64, error) {
	switch name {
	case "hann", "":
		return window.Hann, nil
	case "hamming":
		return window.Hamming, nil
	case "blackman":
		return window.Blackman, nil
	case "rectangular":
		return window.Rectangular, nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrInvalidWindow)
	}
}

// Compute runs the STFT over the selected channel of buf.
//
// The window is clamped to the available audio (floor 64 samples) and the
// hop recomputed from the overlap percentage; a hop that would round below
// one sample is forced to 1. An invalid scale is a configuration error and
// is rejected, never defaulted.
func Compute(buf *audio.Buffer, p Parameters) (*Spectrogram, error) {
	switch p.Scale {
	case ScaleAmplitude, ScalePower, ScalePSD:
	default:
		return nil, fmt.Errorf("%q: %w", p.Scale, ErrInvalidScale)
	}

	wfunc, err := windowFunc(p.Window)
	if err != nil {
		return nil, err
	}

	if buf.Frames() == 0 {
		return nil, ErrEmptyBuffer
	}

	samples := buf.Channel(p.Channel)

	winSize := p.WindowSize
	if winSize > len(samples) {
		winSize = max(len(samples), minWindowSize)
	}
	if winSize < minWindowSize {
		winSize = minWindowSize
	}

	hop := int(math.Round(float64(winSize) * (1 - p.OverlapPercent/100)))
	if hop < 1 {
		hop = 1
	}

	win := wfunc(winSize)
	var winPower float64
	for _, w := range win {
		winPower += w * w
	}

	bins := winSize/2 + 1
	columns := 0
	if len(samples) >= winSize {
		columns = (len(samples)-winSize)/hop + 1
	}

	data := make([][]float64, bins)
	for k := range data {
		data[k] = make([]float64, columns)
	}

	frame := make([]float64, winSize)
	rate := float64(buf.SampleRate)

	for col := range columns {
		off := col * hop
		for i := range winSize {
			frame[i] = float64(samples[off+i]) * win[i]
		}

		coeffs := fft.FFTReal(frame)

		for k := range bins {
			mag := cmplx.Abs(coeffs[k])
			var v float64
			switch p.Scale {
			case ScaleAmplitude:
				v = mag
			case ScalePower:
				v = mag * mag
			case ScalePSD:
				v = mag * mag / (rate * winPower)
				// Interior bins carry the energy of both spectrum
				// halves.
				if k > 0 && k < bins-1 {
					v *= 2
				}
			}
			data[k][col] = v
		}
	}

	return &Spectrogram{
		Data:       data,
		SampleRate: buf.SampleRate,
		WindowSize: winSize,
		HopSize:    hop,
	}, nil
}
