// SPDX-License-Identifier: EPL-2.0

package loader

// Parameters controls post-decode processing. Constructed once per request
// and never mutated.
type Parameters struct {
	// Resample enables resampling to SampleRate.
	Resample   bool
	SampleRate int
	// LowFreq/HighFreq, when set, band-pass the decoded signal.
	LowFreq  *float64
	HighFreq *float64
	// FilterOrder of the band-pass cascade.
	FilterOrder int
}

// DefaultParameters returns the parameters used when a request carries no
// audio settings: no resampling, no filtering.
func DefaultParameters() Parameters {
	return Parameters{
		SampleRate:  44100,
		FilterOrder: 4,
	}
}
