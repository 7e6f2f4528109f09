// SPDX-License-Identifier: EPL-2.0

package render

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Colormap maps a normalized value in [0, 1] to a color.
type Colormap func(v float64) color.Color

type gradientStop struct {
	pos   float64
	color colorful.Color
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var gradients = map[string][]gradientStop{
	"viridis": {
		{0.00, mustHex("#440154")},
		{0.25, mustHex("#3b528b")},
		{0.50, mustHex("#21918c")},
		{0.75, mustHex("#5ec962")},
		{1.00, mustHex("#fde725")},
	},
	"magma": {
		{0.00, mustHex("#000004")},
		{0.25, mustHex("#51127c")},
		{0.50, mustHex("#b73779")},
		{0.75, mustHex("#fc8961")},
		{1.00, mustHex("#fcfdbf")},
	},
	"grey": {
		{0.00, mustHex("#000000")},
		{1.00, mustHex("#ffffff")},
	},
}

// NewColormap looks up a gradient by name and returns a lookup closure
// with the given gamma correction baked in.
func NewColormap(name string, gamma float64) (Colormap, error) {
	stops, ok := gradients[name]
	if !ok {
		return nil, ErrUnknownColormap
	}
	if gamma <= 0 {
		gamma = 1
	}

	return func(v float64) color.Color {
		if math.IsNaN(v) || v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		if gamma != 1 {
			v = math.Pow(v, gamma)
		}

		for i := 0; i < len(stops)-1; i++ {
			a, b := stops[i], stops[i+1]
			if v <= b.pos {
				t := (v - a.pos) / (b.pos - a.pos)
				return a.color.BlendLuv(b.color, t).Clamped()
			}
		}
		return stops[len(stops)-1].color
	}, nil
}
