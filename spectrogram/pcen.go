// SPDX-License-Identifier: EPL-2.0

package spectrogram

import "math"

// PCEN constants: adaptive gain strength, bias, compression exponent and
// the smoother's time constant in seconds.
const (
	pcenGain         = 0.98
	pcenBias         = 2.0
	pcenPower        = 0.5
	pcenEps          = 1e-6
	pcenTimeConstant = 0.4
)

// PCEN applies per-channel energy normalization in place.
//
// The input must be amplitude-scale, pre-dB data: the per-bin IIR smoother
// tracks linear magnitudes, and the gain term is meaningless on
// log-scaled values. Output values are non-negative.
func PCEN(s *Spectrogram) {
	if s.Columns() == 0 {
		return
	}

	// Smoothing coefficient from the time constant, expressed in frames.
	t := pcenTimeConstant * float64(s.SampleRate) / float64(s.HopSize)
	b := (math.Sqrt(1+4*t*t) - 1) / (2 * t * t)

	biasTerm := math.Pow(pcenBias, pcenPower)

	for _, row := range s.Data {
		m := row[0]
		for i, e := range row {
			if i > 0 {
				m = (1-b)*m + b*e
			}
			gain := math.Pow(m+pcenEps, -pcenGain)
			row[i] = math.Pow(e*gain+pcenBias, pcenPower) - biasTerm
		}
	}
}
