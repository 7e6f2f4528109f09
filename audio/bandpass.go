// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
)

// biquad is a single second-order IIR section in direct form 1, with
// per-channel state so interleaved streams filter independently.
type biquad struct {
	b0, b1, b2, a1, a2 float64

	x1, x2, y1, y2 []float64
}

func newBiquad(channels int, b0, b1, b2, a0, a1, a2 float64) *biquad {
	return &biquad{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
		x1: make([]float64, channels), x2: make([]float64, channels),
		y1: make([]float64, channels), y2: make([]float64, channels),
	}
}

func (q *biquad) process(x float64, ch int) float64 {
	y := q.b0*x + q.b1*q.x1[ch] + q.b2*q.x2[ch] - q.a1*q.y1[ch] - q.a2*q.y2[ch]
	q.x2[ch], q.x1[ch] = q.x1[ch], x
	q.y2[ch], q.y1[ch] = q.y1[ch], y
	return y
}

// RBJ cookbook high-pass and low-pass sections, Butterworth Q.
func highpassSection(channels int, cutoff, rate float64) *biquad {
	w := 2 * math.Pi * cutoff / rate
	alpha := math.Sin(w) / math.Sqrt2
	cw := math.Cos(w)

	return newBiquad(channels,
		(1+cw)/2, -(1 + cw), (1+cw)/2,
		1+alpha, -2*cw, 1-alpha)
}

func lowpassSection(channels int, cutoff, rate float64) *biquad {
	w := 2 * math.Pi * cutoff / rate
	alpha := math.Sin(w) / math.Sqrt2
	cw := math.Cos(w)

	return newBiquad(channels,
		(1-cw)/2, 1-cw, (1-cw)/2,
		1+alpha, -2*cw, 1-alpha)
}

// Bandpass streams from src through a cascade of second-order high-pass
// and low-pass sections, restricting the signal to [low, high] Hz. Either
// cutoff may be nil to leave that side open. Works on interleaved samples;
// preserves channel count and sample rate.
type Bandpass struct {
	src      Source
	sections []*biquad
	channels int
}

// NewBandpass builds the filter cascade. order is the overall filter order;
// each cutoff gets ceil(order/2) second-order sections.
func NewBandpass(src Source, low, high *float64, order int) (*Bandpass, error) {
	rate := float64(src.SampleRate())
	nyquist := rate / 2
	channels := src.Channels()

	if order < 2 {
		order = 2
	}
	perSide := (order + 1) / 2

	var sections []*biquad
	if low != nil {
		if *low <= 0 || *low >= nyquist {
			return nil, fmt.Errorf("low cutoff %.1f Hz: %w", *low, ErrInvalidCutoff)
		}
		for range perSide {
			sections = append(sections, highpassSection(channels, *low, rate))
		}
	}
	if high != nil {
		if *high <= 0 || *high >= nyquist {
			return nil, fmt.Errorf("high cutoff %.1f Hz: %w", *high, ErrInvalidCutoff)
		}
		for range perSide {
			sections = append(sections, lowpassSection(channels, *high, rate))
		}
	}

	return &Bandpass{
		src:      src,
		sections: sections,
		channels: channels,
	}, nil
}

func (b *Bandpass) SampleRate() int { return b.src.SampleRate() }
func (b *Bandpass) Channels() int   { return b.channels }
func (b *Bandpass) BufSize() int    { return b.src.BufSize() }

func (b *Bandpass) Close() error {
	err := b.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (b *Bandpass) ReadSamples(dst []float32) (int, error) {
	if len(dst)%b.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	n, err := b.src.ReadSamples(dst)
	if n == 0 {
		return 0, err
	}

	frames := n / b.channels
	for f := range frames {
		for c := range b.channels {
			v := float64(dst[f*b.channels+c])
			for _, q := range b.sections {
				v = q.process(v, c)
			}
			dst[f*b.channels+c] = float32(v)
		}
	}

	return frames * b.channels, err
}
