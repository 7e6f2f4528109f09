// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from seekable input. Seeking is required
// because several container formats place metadata chunks ahead of the
// sample data.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry for decoders by lower-case file extension without the dot
// (e.g., "wav", "mp3", "flac").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(ext string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(ext)] = d
}

func (r *Registry) Get(ext string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(ext)]
	return d, ok
}

// ForPath returns the decoder registered for the extension of path.
func (r *Registry) ForPath(path string) (Decoder, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, false
	}
	return r.Get(ext)
}

// ReadAll drains src into a Buffer. The source's own sample rate and
// channel layout are carried over; offset marks where the first frame sits
// on the recording's time axis.
func ReadAll(src Source, offset float64) (*Buffer, error) {
	bufSize := src.BufSize()
	if bufSize < src.Channels() {
		bufSize = 4096
	}

	data := make([]float32, 0, bufSize*4)
	tmp := make([]float32, bufSize)

	for {
		n, err := src.ReadSamples(tmp)
		if n > 0 {
			data = append(data, tmp[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	// Drop a trailing partial frame; decoders for lossy formats can emit one.
	channels := src.Channels()
	data = data[:len(data)/channels*channels]

	return &Buffer{
		Data:       data,
		SampleRate: src.SampleRate(),
		Channels:   channels,
		Offset:     offset,
	}, nil
}
