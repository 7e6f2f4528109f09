// SPDX-License-Identifier: EPL-2.0

package render

import (
	"image"

	"github.com/trackIT-Systems/sonari-sub000/spectrogram"
)

// SpectrogramImage colorizes a normalized spectrogram. One pixel per
// time/frequency bin, time on the x axis and the lowest frequency at the
// bottom row. Values are expected to already lie in [0, 1].
func SpectrogramImage(s *spectrogram.Spectrogram, colormap string, gamma float64) (image.Image, error) {
	if s.Columns() == 0 {
		return nil, ErrEmptySpectrogram
	}

	cmap, err := NewColormap(colormap, gamma)
	if err != nil {
		return nil, err
	}

	width, height := s.Columns(), s.Bins()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for bin := 0; bin < height; bin++ {
		y := height - 1 - bin
		row := s.Data[bin]
		for x := 0; x < width; x++ {
			img.Set(x, y, cmap(row[x]))
		}
	}
	return img, nil
}
