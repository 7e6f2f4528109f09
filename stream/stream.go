// SPDX-License-Identifier: EPL-2.0

// Package stream converts HTTP byte ranges over a virtual WAV resource
// into PCM chunks.
//
// The virtual resource a client sees is [WAV header][PCM payload] for the
// requested time window of a recording. The header is synthesized on the
// fly and its declared data size always covers the whole logical window,
// never just the chunk being produced, so repeated ranged requests stay
// internally consistent.
package stream

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/trackIT-Systems/sonari-sub000/formats/wav"
	"github.com/trackIT-Systems/sonari-sub000/loader"
)

// HeaderSize is the byte length of the synthesized WAV header preceding
// the PCM payload in the virtual resource.
const HeaderSize = wav.HeaderSize

// DefaultFramesPerRead bounds how many PCM frames a single chunk carries.
const DefaultFramesPerRead = 1 << 15

var (
	ErrRangeInsideHeader   = errors.New("byte range starts inside the WAV header")
	ErrInvalidRange        = errors.New("end byte precedes start byte")
	ErrUnsupportedBitDepth = wav.ErrUnsupportedBitDepth
)

// Request is an already-parsed byte-range request over the virtual
// resource of one recording window.
type Request struct {
	// StartByte of the range. 0 means "from the top", including the
	// synthesized header.
	StartByte int64
	// EndByte is exclusive; < 0 means "until end of resource".
	EndByte int64
	// StartTime/EndTime bound the logical window in seconds; nil means
	// 0 and the recording's duration.
	StartTime *float64
	EndTime   *float64
	// Speed scales the sample rate advertised in the header, for slowed
	// or sped-up playback of ultrasonic material. 0 means 1.
	Speed float64
	// FramesPerRead caps the chunk size in frames. 0 means
	// DefaultFramesPerRead.
	FramesPerRead int
	// BitDepth of the emitted PCM. 0 means 16.
	BitDepth int
}

// Chunk is one produced slice of the virtual resource.
type Chunk struct {
	Payload []byte
	// Start and End are the inclusive byte positions of Payload within
	// the virtual resource, ready for a Content-Range header.
	Start, End int64
	// TotalSize is the logical size of the whole virtual resource:
	// header plus the full window's PCM byte count.
	TotalSize int64
}

// Streamer slices recording windows into WAV byte ranges.
type Streamer struct {
	loader *loader.Loader
	log    *logrus.Entry
}

func New(l *loader.Loader) *Streamer {
	return &Streamer{
		loader: l,
		log:    logrus.WithField("component", "stream"),
	}
}

// Stream produces the chunk of rec's virtual WAV resource selected by req.
//
// Ranges starting strictly inside the header are rejected: the header is
// only ever produced whole, as the prefix of a range starting at 0.
func (s *Streamer) Stream(rec loader.Recording, audioDir string, params loader.Parameters, req Request) (Chunk, error) {
	bitDepth := req.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	switch bitDepth {
	case 8, 16, 32:
	default:
		return Chunk{}, ErrUnsupportedBitDepth
	}

	if req.StartByte > 0 && req.StartByte < HeaderSize {
		return Chunk{}, ErrRangeInsideHeader
	}
	if req.EndByte >= 0 && req.EndByte < req.StartByte {
		return Chunk{}, ErrInvalidRange
	}

	framesPerRead := req.FramesPerRead
	if framesPerRead <= 0 {
		framesPerRead = DefaultFramesPerRead
	}
	speed := req.Speed
	if speed <= 0 {
		speed = 1
	}

	// The whole logical window backs every chunk; the loader's cache
	// makes repeated calls cheap.
	window, err := s.loader.Load(rec, req.StartTime, req.EndTime, audioDir, params)
	if err != nil {
		return Chunk{}, err
	}

	channels := window.Channels
	bytesPerFrame := int64(channels * bitDepth / 8)
	totalFrames := int64(window.Frames())
	dataSize := totalFrames * bytesPerFrame
	totalSize := HeaderSize + dataSize

	// Byte offsets are payload-relative once the header is stripped. A
	// range past the logical end clamps to an empty payload, never an
	// error.
	var offsetFrames int64
	if req.StartByte >= HeaderSize {
		offsetFrames = min((req.StartByte-HeaderSize)/bytesPerFrame, totalFrames)
	}

	framesToRead := min(int64(framesPerRead), totalFrames-offsetFrames)

	lo := offsetFrames * int64(channels)
	hi := (offsetFrames + framesToRead) * int64(channels)
	payload, err := wav.EncodePCM(window.Data[lo:hi], bitDepth)
	if err != nil {
		return Chunk{}, err
	}

	if req.StartByte == 0 {
		// The header's data size covers the entire window, not this
		// chunk; chunked clients reassemble a consistent file.
		rate := int(float64(window.SampleRate) * speed)
		payload = append(wav.NewHeader(uint32(dataSize), rate, channels, bitDepth), payload...)
	}

	// Some browsers probe with a tiny range before streaming; honor the
	// requested length exactly.
	if req.EndByte >= 0 {
		if want := req.EndByte - req.StartByte; int64(len(payload)) > want {
			payload = payload[:want]
		}
	}

	s.log.WithFields(logrus.Fields{
		"recording":   rec.ID,
		"start_byte":  req.StartByte,
		"chunk_bytes": len(payload),
		"total_size":  totalSize,
	}).Debug("produced range chunk")

	return Chunk{
		Payload:   payload,
		Start:     req.StartByte,
		End:       req.StartByte + int64(len(payload)) - 1,
		TotalSize: totalSize,
	}, nil
}
