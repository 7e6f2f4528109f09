// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/trackIT-Systems/sonari-sub000/utils"
)

// HeaderSize is the length of the canonical PCM WAV header: RIFF chunk
// descriptor, fmt chunk and data chunk header.
const HeaderSize = 44

// NewHeader synthesizes a canonical 44-byte little-endian PCM WAV header.
// dataSize must be the byte count of the full PCM payload the header
// describes, not of any individual chunk handed to a client.
func NewHeader(dataSize uint32, sampleRate, channels, bitDepth int) []byte {
	byteRate := uint32(sampleRate) * uint32(channels) * uint32(bitDepth/8)
	blockAlign := uint16(channels) * uint16(bitDepth/8)

	header := make([]byte, HeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], dataSize+36)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM format
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	return header
}

// EncodePCM converts interleaved float32 samples to little-endian PCM
// bytes at the given depth. Supported depths are 8 (unsigned), 16 and 32.
func EncodePCM(samples []float32, bitDepth int) ([]byte, error) {
	switch bitDepth {
	case 8:
		out := make([]byte, len(samples))
		for i, v := range samples {
			out[i] = utils.Float32ToUint8(v)
		}
		return out, nil
	case 16:
		out := make([]byte, len(samples)*2)
		for i, v := range samples {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(utils.Float32ToInt16(v)))
		}
		return out, nil
	case 32:
		out := make([]byte, len(samples)*4)
		for i, v := range samples {
			binary.LittleEndian.PutUint32(out[i*4:], uint32(utils.Float32ToInt32(v)))
		}
		return out, nil
	default:
		return nil, ErrUnsupportedBitDepth
	}
}

// Write emits a complete PCM WAV file: synthesized header followed by the
// encoded samples.
func Write(w io.Writer, sampleRate, channels, bitDepth int, samples []float32) error {
	payload, err := EncodePCM(samples, bitDepth)
	if err != nil {
		return err
	}

	if _, err := w.Write(NewHeader(uint32(len(payload)), sampleRate, channels, bitDepth)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	return nil
}
