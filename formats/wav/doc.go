// SPDX-License-Identifier: EPL-2.0

// Package wav decodes PCM WAV files and synthesizes WAV wire output.
//
// Decoding is backed by github.com/go-audio/wav and handles 8, 16, 24 and
// 32-bit integer PCM at any rate and channel count, which covers the files
// produced by long-term acoustic recorders. Compressed or IEEE-float WAV
// variants are rejected.
//
// The package also owns the serving side of the format: NewHeader builds
// the fixed 44-byte PCM header the byte-range streamer prepends to the
// first chunk of a virtual WAV resource, and EncodePCM turns decoded
// float32 samples back into little-endian PCM payload bytes.
package wav
