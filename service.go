// SPDX-License-Identifier: EPL-2.0

package sonari

import (
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/trackIT-Systems/sonari-sub000/audio"
	"github.com/trackIT-Systems/sonari-sub000/cache"
	"github.com/trackIT-Systems/sonari-sub000/formats"
	"github.com/trackIT-Systems/sonari-sub000/loader"
	"github.com/trackIT-Systems/sonari-sub000/render"
	"github.com/trackIT-Systems/sonari-sub000/spectrogram"
	"github.com/trackIT-Systems/sonari-sub000/stream"
)

// ErrPCENScale rejects spectrogram requests combining PCEN with a
// non-amplitude scale. PCEN's gain control is defined on linear
// magnitudes; running it on squared or PSD-normalized values would
// silently produce garbage, so the combination is a configuration error.
var ErrPCENScale = errors.New("pcen requires the amplitude scale")

// Service ties cache, loader, streamer and renderers together behind one
// handle. Safe for concurrent use; every worker process builds its own
// Service and shares decoded audio through the cache directory.
type Service struct {
	cfg      Config
	cache    cache.Shared
	loader   *loader.Loader
	streamer *stream.Streamer
	log      *logrus.Entry
}

// NewService builds the pipeline described by cfg. With a cache
// directory configured, decoded audio is shared across processes;
// otherwise each process caches on its own.
func NewService(cfg Config) (*Service, error) {
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	policy := cache.Policy{TTL: cfg.CacheTTL, MaxSize: cfg.CacheMaxSize}
	var shared cache.Shared
	if cfg.CacheDir != "" {
		dir, err := cache.NewDir(cfg.CacheDir, policy)
		if err != nil {
			return nil, fmt.Errorf("opening cache directory: %w", err)
		}
		shared = dir
	} else {
		shared = cache.NewMemory(policy)
	}

	l := loader.New(shared, formats.NewRegistry())
	return &Service{
		cfg:      cfg,
		cache:    shared,
		loader:   l,
		streamer: stream.New(l),
		log:      logrus.WithField("component", "service"),
	}, nil
}

// Cache exposes the shared cache, mostly for operational endpoints that
// want to report or clear it.
func (s *Service) Cache() cache.Shared { return s.cache }

// LoadClip returns the decoded [start, end) window of a recording. Nil
// bounds default to the whole recording.
func (s *Service) LoadClip(rec loader.Recording, start, end *float64, params loader.Parameters) (*audio.Buffer, error) {
	return s.loader.Load(rec, start, end, s.cfg.AudioDir, params)
}

// StreamRange produces one byte-range chunk of the recording's virtual
// WAV resource.
func (s *Service) StreamRange(rec loader.Recording, params loader.Parameters, req stream.Request) (stream.Chunk, error) {
	if req.FramesPerRead == 0 {
		req.FramesPerRead = s.cfg.FramesPerRead
	}
	return s.streamer.Stream(rec, s.cfg.AudioDir, params, req)
}

// ComputeSpectrogram runs the full analysis pipeline on a clip window:
// STFT, then PCEN on the linear magnitudes when requested, then dB
// conversion, then normalization. The result lies in [0, 1], ready for
// colorizing.
func (s *Service) ComputeSpectrogram(rec loader.Recording, start, end *float64, params loader.Parameters, sp spectrogram.Parameters) (*spectrogram.Spectrogram, error) {
	if sp.PCEN && sp.Scale != spectrogram.ScaleAmplitude {
		return nil, ErrPCENScale
	}

	buf, err := s.LoadClip(rec, start, end, params)
	if err != nil {
		return nil, err
	}

	spec, err := spectrogram.Compute(buf, sp)
	if err != nil {
		return nil, err
	}

	if sp.PCEN {
		spectrogram.PCEN(spec)
	}
	spectrogram.ToDB(spec, sp.Scale, sp.MinDB, sp.MaxDB)
	spectrogram.Normalize(spec, sp.Relative, sp.MinDB, sp.MaxDB)
	return spec, nil
}

// RenderSpectrogram returns the colorized spectrogram tile for a clip
// window.
func (s *Service) RenderSpectrogram(rec loader.Recording, start, end *float64, params loader.Parameters, sp spectrogram.Parameters) (image.Image, error) {
	spec, err := s.ComputeSpectrogram(rec, start, end, params, sp)
	if err != nil {
		return nil, err
	}
	return render.SpectrogramImage(spec, sp.Colormap, sp.Gamma)
}

// RenderWaveform draws the min/max waveform tile for a clip window. The
// canvas width follows the spectrogram hop so waveform and spectrogram
// tiles line up pixel for pixel.
func (s *Service) RenderWaveform(rec loader.Recording, start, end *float64, params loader.Parameters, sp spectrogram.Parameters) (image.Image, error) {
	buf, err := s.LoadClip(rec, start, end, params)
	if err != nil {
		return nil, err
	}

	width := render.WaveformWidth(buf.Duration(), sp.HopSeconds(buf.SampleRate))
	height := s.cfg.WaveformHeight
	if height <= 0 {
		height = render.DefaultWaveformHeight
	}
	return render.Waveform(buf.Channel(sp.Channel), width, height)
}

// RenderPSD draws the time-averaged power spectral density of a clip
// window, restricted to [lowFreq, highFreq] when set. The returned dB
// extremes label the plot's value axis; they are not baked into the
// image.
func (s *Service) RenderPSD(rec loader.Recording, start, end *float64, params loader.Parameters, sp spectrogram.Parameters, lowFreq, highFreq *float64) (image.Image, float64, float64, error) {
	buf, err := s.LoadClip(rec, start, end, params)
	if err != nil {
		return nil, 0, 0, err
	}

	psd, freqs, _, err := render.PSD(buf, sp)
	if err != nil {
		return nil, 0, 0, err
	}
	return render.PSDPlot(psd, freqs, lowFreq, highFreq, render.DefaultPSDWidth, render.DefaultPSDHeight)
}
