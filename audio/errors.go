// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrNoDecoder      = errors.New("no decoder registered for format")
	ErrCorruptBlob    = errors.New("malformed audio buffer blob")
	ErrInvalidCutoff  = errors.New("filter cutoff must be below the Nyquist frequency")
)
