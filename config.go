// SPDX-License-Identifier: EPL-2.0

package sonari

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries the deployment knobs of the serving pipeline.
type Config struct {
	// AudioDir is the root directory recording paths are resolved
	// against.
	AudioDir string `env:"SONARI_AUDIO_DIR" envDefault:"."`
	// CacheDir enables the directory-backed cache shared between worker
	// processes. Empty means a per-process in-memory cache.
	CacheDir     string        `env:"SONARI_CACHE_DIR"`
	CacheTTL     time.Duration `env:"SONARI_CACHE_TTL" envDefault:"15m"`
	CacheMaxSize int           `env:"SONARI_CACHE_MAX_SIZE" envDefault:"64"`
	// WaveformHeight is the pixel height of rendered waveform tiles.
	WaveformHeight int `env:"SONARI_WAVEFORM_HEIGHT" envDefault:"200"`
	// FramesPerRead caps the PCM frames per streamed chunk.
	FramesPerRead int    `env:"SONARI_FRAMES_PER_READ" envDefault:"32768"`
	LogLevel      string `env:"SONARI_LOG_LEVEL" envDefault:"info"`
}

// ConfigFromEnv reads the configuration from SONARI_* environment
// variables, falling back to the documented defaults.
func ConfigFromEnv() (Config, error) {
	return env.ParseAs[Config]()
}
