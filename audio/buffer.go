// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"
)

// Buffer is a fully decoded clip: interleaved float32 PCM frames plus the
// rate and channel layout needed to interpret them. Offset is the position
// of the first frame on the recording's time axis, in seconds.
//
// A Buffer is never mutated after it is produced. Cached buffers are shared
// read-only between requests; Slice returns views into the same backing
// array, which is safe under that convention.
type Buffer struct {
	Data       []float32
	SampleRate int
	Channels   int
	Offset     float64
}

// Frames returns the number of multi-channel frames in the buffer.
func (b *Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Duration of the buffer in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Slice returns the [start, end) window in seconds on the recording's time
// axis. Frame indices are computed as round(time * rate) and clamped to the
// available data, so a window past the tail yields an empty buffer rather
// than an error.
func (b *Buffer) Slice(start, end float64) *Buffer {
	rate := float64(b.SampleRate)
	frames := b.Frames()

	lo := int(math.Round((start - b.Offset) * rate))
	hi := int(math.Round((end - b.Offset) * rate))

	lo = min(max(lo, 0), frames)
	hi = min(max(hi, lo), frames)

	return &Buffer{
		Data:       b.Data[lo*b.Channels : hi*b.Channels],
		SampleRate: b.SampleRate,
		Channels:   b.Channels,
		Offset:     b.Offset + float64(lo)/rate,
	}
}

// Channel extracts a single channel as a contiguous slice. An index beyond
// the available channels falls back to channel 0.
func (b *Buffer) Channel(ch int) []float32 {
	if ch < 0 || ch >= b.Channels {
		ch = 0
	}

	frames := b.Frames()
	out := make([]float32, frames)
	for f := range frames {
		out[f] = b.Data[f*b.Channels+ch]
	}
	return out
}

// Binary blob layout, little-endian: magic "SAB1", uint32 sample rate,
// uint16 channels, float64 offset, uint32 frame count, raw float32 samples.
const blobMagic = "SAB1"

const blobHeaderSize = 4 + 4 + 2 + 8 + 4

// MarshalBinary serializes the buffer into the opaque blob format the
// shared cache stores.
func (b *Buffer) MarshalBinary() ([]byte, error) {
	out := make([]byte, blobHeaderSize+len(b.Data)*4)

	copy(out[0:4], blobMagic)
	binary.LittleEndian.PutUint32(out[4:8], uint32(b.SampleRate))
	binary.LittleEndian.PutUint16(out[8:10], uint16(b.Channels))
	binary.LittleEndian.PutUint64(out[10:18], math.Float64bits(b.Offset))
	binary.LittleEndian.PutUint32(out[18:22], uint32(b.Frames()))

	for i, v := range b.Data {
		binary.LittleEndian.PutUint32(out[blobHeaderSize+i*4:], math.Float32bits(v))
	}
	return out, nil
}

// UnmarshalBinary restores a buffer from a cache blob.
func (b *Buffer) UnmarshalBinary(blob []byte) error {
	if len(blob) < blobHeaderSize || string(blob[0:4]) != blobMagic {
		return ErrCorruptBlob
	}

	rate := int(binary.LittleEndian.Uint32(blob[4:8]))
	channels := int(binary.LittleEndian.Uint16(blob[8:10]))
	offset := math.Float64frombits(binary.LittleEndian.Uint64(blob[10:18]))
	frames := int(binary.LittleEndian.Uint32(blob[18:22]))

	if channels < 1 || len(blob) != blobHeaderSize+frames*channels*4 {
		return ErrCorruptBlob
	}

	data := make([]float32, frames*channels)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[blobHeaderSize+i*4:]))
	}

	b.Data = data
	b.SampleRate = rate
	b.Channels = channels
	b.Offset = offset
	return nil
}
