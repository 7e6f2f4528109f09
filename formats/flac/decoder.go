package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"

	"github.com/trackIT-Systems/sonari-sub000/audio"
)

var ErrNotFlacFile = errors.New("not a FLAC file")

type source struct {
	stream     *flac.Stream
	sampleRate int
	channels   int
	scale      float32

	// Interleaved samples decoded from the last frame but not yet handed out.
	pending []float32
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return nil }

// decodeFrame pulls the next FLAC frame and interleaves its subframes.
func (s *source) decodeFrame() error {
	frame, err := s.stream.ParseNext()
	if err != nil {
		return err
	}

	blockSize := len(frame.Subframes[0].Samples)
	out := make([]float32, 0, blockSize*s.channels)
	for i := range blockSize {
		for ch := range s.channels {
			out = append(out, float32(frame.Subframes[ch].Samples[i])/s.scale)
		}
	}

	s.pending = out
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	written := 0
	for written < len(dst) {
		if len(s.pending) == 0 {
			if err := s.decodeFrame(); err != nil {
				if err == io.EOF {
					if written == 0 {
						return 0, io.EOF
					}
					return written, io.EOF
				}
				return written, fmt.Errorf("parsing flac frame: %w", err)
			}
		}

		n := copy(dst[written:], s.pending)
		s.pending = s.pending[n:]
		written += n
	}

	return written, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		scale:      float32(int64(1) << (info.BitsPerSample - 1)),
	}, nil
}
