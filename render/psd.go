// SPDX-License-Identifier: EPL-2.0

package render

import (
	"image"
	"image/color"
	"math"

	"github.com/trackIT-Systems/sonari-sub000/audio"
	"github.com/trackIT-Systems/sonari-sub000/spectrogram"
)

// Default plot area for PSD curves. Axis labels are not baked into the
// image; callers label it from the dB range returned alongside.
const (
	DefaultPSDWidth  = 800
	DefaultPSDHeight = 400
)

// PSD computes the time-averaged power spectral density of a clip: a
// spectrogram in dB, averaged over the time axis per frequency bin.
// The bin center frequencies span 0..Nyquist.
func PSD(buf *audio.Buffer, p spectrogram.Parameters) (psd, freqs []float64, sampleRate int, err error) {
	s, err := spectrogram.Compute(buf, p)
	if err != nil {
		return nil, nil, 0, err
	}
	if s.Columns() == 0 {
		return nil, nil, 0, ErrEmptySpectrogram
	}

	spectrogram.ToDB(s, p.Scale, p.MinDB, p.MaxDB)

	psd = make([]float64, s.Bins())
	for bin, row := range s.Data {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		psd[bin] = sum / float64(len(row))
	}
	return psd, s.Frequencies(), s.SampleRate, nil
}

// PSDPlot draws the PSD curve as a normalized polyline on a canvas of
// the given size, restricted to [lowFreq, highFreq] when set. The actual
// dB extremes of the drawn bins are returned so the caller can label the
// value axis.
func PSDPlot(psd, freqs []float64, lowFreq, highFreq *float64, width, height int) (image.Image, float64, float64, error) {
	if width <= 0 || height <= 0 {
		return nil, 0, 0, ErrInvalidCanvas
	}

	first, last := 0, len(psd)-1
	if lowFreq != nil {
		for first <= last && freqs[first] < *lowFreq {
			first++
		}
	}
	if highFreq != nil {
		for last >= first && freqs[last] > *highFreq {
			last--
		}
	}
	if first > last {
		return nil, 0, 0, ErrEmptyFrequencyRange
	}
	curve := psd[first : last+1]

	minDB, maxDB := curve[0], curve[0]
	for _, v := range curve {
		minDB = math.Min(minDB, v)
		maxDB = math.Max(maxDB, v)
	}
	span := maxDB - minDB

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fg := color.RGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff}

	pointAt := func(x int) (int, int) {
		bin := 0
		if width > 1 {
			bin = x * (len(curve) - 1) / (width - 1)
		}
		norm := 0.5
		if span > 0 {
			norm = (curve[bin] - minDB) / span
		}
		y := int(math.Round((1 - norm) * float64(height-1)))
		return x, y
	}

	px, py := pointAt(0)
	for x := 1; x < width; x++ {
		nx, ny := pointAt(x)
		drawLine(img, px, py, nx, ny, fg)
		px, py = nx, ny
	}
	if width == 1 {
		img.Set(px, py, fg)
	}

	return img, minDB, maxDB, nil
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		if 2*e >= dy {
			e += dy
			x0 += sx
		}
		if 2*e <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
