// SPDX-License-Identifier: EPL-2.0

package spectrogram

import "math"

// floor below which magnitudes are treated as silence to keep the log
// finite.
const amin = 1e-10

// ToDB converts the spectrogram to decibels in place and clamps every
// value into [minDB, maxDB]. Amplitude-scale data (including PCEN output)
// uses 20·log10, power and PSD data 10·log10.
func ToDB(s *Spectrogram, scale Scale, minDB, maxDB float64) {
	factor := 10.0
	if scale == ScaleAmplitude {
		factor = 20.0
	}

	for _, row := range s.Data {
		for i, v := range row {
			db := factor * math.Log10(math.Max(v, amin))
			row[i] = math.Min(math.Max(db, minDB), maxDB)
		}
	}
}

// Normalize rescales dB values into [0, 1] in place. Relative mode uses
// the clip's own extremes; fixed mode uses the configured clamp range. A
// clip with no dynamic range maps uniformly to 0.5.
func Normalize(s *Spectrogram, relative bool, minDB, maxDB float64) {
	lo, hi := minDB, maxDB
	if relative {
		lo, hi = math.Inf(1), math.Inf(-1)
		for _, row := range s.Data {
			for _, v := range row {
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
			}
		}
	}

	span := hi - lo
	for _, row := range s.Data {
		for i, v := range row {
			if span == 0 {
				row[i] = 0.5
				continue
			}
			row[i] = math.Min(math.Max((v-lo)/span, 0), 1)
		}
	}
}
