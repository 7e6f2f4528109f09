// SPDX-License-Identifier: EPL-2.0

// Package sonari serves decoded audio and derived visualizations for
// long-lived acoustic recordings.
//
// The pipeline decodes a recording once into a shared cache, slices time
// windows out of the decoded clip, and turns them into ranged WAV byte
// streams, spectrogram tiles, waveform tiles and power spectral density
// plots. Recording metadata is supplied by the caller; persistence,
// routing and session concerns stay outside this module.
//
// The subpackages can be used directly; Service wires them together with
// an environment-driven configuration.
package sonari
