// SPDX-License-Identifier: EPL-2.0

// Package render rasterizes decoded audio into waveform, spectrogram
// and power spectral density images.
package render

import (
	"image"
	"image/jpeg"
	"io"

	"github.com/HugoSmits86/nativewebp"
)

// maxWebPWidth is the widest image lossless WebP can hold.
const maxWebPWidth = 1<<14 - 1

const jpegQuality = 90

// EncodeImage writes img losslessly as WebP, falling back to JPEG for
// images wider than the WebP format allows. It reports the MIME type of
// the encoding it picked.
func EncodeImage(w io.Writer, img image.Image) (string, error) {
	if img.Bounds().Dx() > maxWebPWidth {
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return "", err
		}
		return "image/jpeg", nil
	}
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return "", err
	}
	return "image/webp", nil
}
