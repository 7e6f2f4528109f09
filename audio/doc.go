// SPDX-License-Identifier: EPL-2.0

// Package audio holds the decoded-audio building blocks of the serving
// core: the Buffer value carrying interleaved PCM, the streaming Source
// and Decoder contracts, the format Registry, and the streaming
// transforms (Resampler, Bandpass) the loader chains behind a decoder.
package audio
