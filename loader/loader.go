// SPDX-License-Identifier: EPL-2.0

// Package loader resolves a time window of a recording to decoded samples,
// using the shared cache to avoid repeated decodes.
//
// A cache entry always holds the entire decoded file, not just the
// requested window: requests for the same recording arrive in bursts of
// small adjacent windows (streaming chunks, spectrogram tiles), so
// decoding once and slicing in memory is cheaper than decoding per
// request.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/trackIT-Systems/sonari-sub000/audio"
	"github.com/trackIT-Systems/sonari-sub000/cache"
)

var ErrNoDecoder = errors.New("no decoder for recording format")

// Loader decodes recordings and serves sliced windows out of the shared
// cache.
type Loader struct {
	cache    cache.Shared
	registry *audio.Registry
	log      *logrus.Entry
}

func New(c cache.Shared, registry *audio.Registry) *Loader {
	if c == nil {
		c = cache.Nop{}
	}
	return &Loader{
		cache:    c,
		registry: registry,
		log:      logrus.WithField("component", "loader"),
	}
}

// Load returns the [start, end) window of a recording in seconds. A nil
// start defaults to 0, a nil end to the recording's duration. The returned
// buffer reflects any resampling and filtering requested in params; slice
// indices are computed against that effective sample rate.
func (l *Loader) Load(rec Recording, start, end *float64, audioDir string, params Parameters) (*audio.Buffer, error) {
	from := 0.0
	if start != nil {
		from = *start
	}
	to := rec.Duration
	if end != nil {
		to = *end
	}

	full, err := l.whole(rec, audioDir, params)
	if err != nil {
		return nil, err
	}

	return full.Slice(from, to), nil
}

// whole returns the entire decoded (and processed) file, from cache when
// possible.
func (l *Loader) whole(rec Recording, audioDir string, params Parameters) (*audio.Buffer, error) {
	key := Fingerprint(rec)
	log := l.log.WithFields(logrus.Fields{"recording": rec.ID, "fingerprint": key})

	if blob, ok := l.cache.Get(key); ok {
		var buf audio.Buffer
		if err := buf.UnmarshalBinary(blob); err == nil {
			log.Debug("serving decoded audio from cache")
			return &buf, nil
		}
		// A corrupt blob is dropped and the file decoded afresh.
		log.Warn("dropping corrupt cache entry")
		l.cache.Pop(key)
	}

	buf, err := l.decode(rec, audioDir, params)
	if err != nil {
		return nil, err
	}

	if blob, err := buf.MarshalBinary(); err == nil {
		l.cache.Set(key, blob)
	}

	return buf, nil
}

func (l *Loader) decode(rec Recording, audioDir string, params Parameters) (*audio.Buffer, error) {
	path := filepath.Join(audioDir, rec.Path)

	decoder, ok := l.registry.ForPath(path)
	if !ok {
		return nil, fmt.Errorf("%q: %w", rec.Path, ErrNoDecoder)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer f.Close()

	src, err := decoder.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", rec.Path, err)
	}
	defer src.Close()

	pipeline := audio.Source(src)

	// Time-expanded files play back slowed down; undo that first so the
	// resampler and filters see true frequencies.
	if rec.TimeExpansion > 0 && rec.TimeExpansion != 1 {
		pipeline = &timeExpanded{
			Source: pipeline,
			rate:   int(float64(pipeline.SampleRate()) * rec.TimeExpansion),
		}
	}

	if params.Resample && params.SampleRate > 0 && params.SampleRate != pipeline.SampleRate() {
		pipeline = audio.NewResampler(pipeline, params.SampleRate)
	}

	if params.LowFreq != nil || params.HighFreq != nil {
		pipeline, err = audio.NewBandpass(pipeline, params.LowFreq, params.HighFreq, params.FilterOrder)
		if err != nil {
			return nil, fmt.Errorf("building band-pass filter: %w", err)
		}
	}

	buf, err := audio.ReadAll(pipeline, 0)
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", rec.Path, err)
	}

	l.log.WithFields(logrus.Fields{
		"recording": rec.ID,
		"frames":    buf.Frames(),
		"rate":      buf.SampleRate,
		"channels":  buf.Channels,
	}).Debug("decoded recording")

	return buf, nil
}

// timeExpanded overrides the advertised sample rate of a source.
type timeExpanded struct {
	audio.Source
	rate int
}

func (t *timeExpanded) SampleRate() int { return t.rate }
