// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	// ErrInvalidCanvas is returned when a requested canvas dimension is
	// zero or negative.
	ErrInvalidCanvas = errors.New("render: canvas dimensions must be positive")

	// ErrUnknownColormap is returned for a colormap name that is not
	// registered.
	ErrUnknownColormap = errors.New("render: unknown colormap")

	// ErrEmptySpectrogram is returned when a spectrogram holds no time
	// columns to draw or average.
	ErrEmptySpectrogram = errors.New("render: spectrogram has no columns")

	// ErrEmptyFrequencyRange is returned when a frequency range selects
	// no spectrum bins.
	ErrEmptyFrequencyRange = errors.New("render: frequency range selects no bins")
)
