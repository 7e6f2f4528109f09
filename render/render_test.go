// SPDX-License-Identifier: EPL-2.0

package render

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackIT-Systems/sonari-sub000/audio"
	"github.com/trackIT-Systems/sonari-sub000/spectrogram"
)

func sineBuffer(rate, frames int, freq float64) *audio.Buffer {
	data := make([]float32, frames)
	for i := range data {
		data[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	}
	return &audio.Buffer{Data: data, SampleRate: rate, Channels: 1}
}

func TestWaveformWidth(t *testing.T) {
	t.Parallel()

	hop := 256.0 / 44100.0
	assert.Equal(t, int(math.Ceil(10.0/hop)), WaveformWidth(10.0, hop))
	assert.Equal(t, 0, WaveformWidth(0, hop))
	assert.Equal(t, 0, WaveformWidth(10, 0))
}

func TestWaveform_CanvasAndBars(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 4096)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * float64(i) / 64))
	}

	img, err := Waveform(samples, 128, DefaultWaveformHeight)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 128, bounds.Dx())
	assert.Equal(t, DefaultWaveformHeight, bounds.Dy())

	// A full-scale sine covers almost the whole vertical extent in every
	// column, since each 32-sample block spans min..max of the cycle.
	for x := 0; x < bounds.Dx(); x++ {
		lit := 0
		for y := 0; y < bounds.Dy(); y++ {
			if img.GrayAt(x, y).Y > 0 {
				lit++
			}
		}
		assert.GreaterOrEqual(t, lit, DefaultWaveformHeight/2-4, "column %d", x)
	}
}

func TestWaveform_SilenceDrawsCenterLine(t *testing.T) {
	t.Parallel()

	img, err := Waveform(make([]float32, 1000), 100, 50)
	require.NoError(t, err)

	for x := 0; x < 100; x++ {
		for y := 0; y < 50; y++ {
			if y == 25 {
				assert.EqualValues(t, 255, img.GrayAt(x, y).Y)
			} else {
				assert.EqualValues(t, 0, img.GrayAt(x, y).Y)
			}
		}
	}
}

func TestWaveform_ShortClipPadsInsteadOfStretching(t *testing.T) {
	t.Parallel()

	img, err := Waveform([]float32{1, -1, 1, -1}, 16, 32)
	require.NoError(t, err)

	// Columns past the available samples stay blank.
	for x := 4; x < 16; x++ {
		for y := 0; y < 32; y++ {
			assert.EqualValues(t, 0, img.GrayAt(x, y).Y)
		}
	}
}

func TestWaveform_RejectsBadCanvas(t *testing.T) {
	t.Parallel()

	_, err := Waveform([]float32{0}, 0, 100)
	assert.ErrorIs(t, err, ErrInvalidCanvas)
	_, err = Waveform([]float32{0}, 100, -1)
	assert.ErrorIs(t, err, ErrInvalidCanvas)
}

func TestNewColormap(t *testing.T) {
	t.Parallel()

	_, err := NewColormap("jet", 1)
	assert.ErrorIs(t, err, ErrUnknownColormap)

	grey, err := NewColormap("grey", 1)
	require.NoError(t, err)

	r0, g0, b0, _ := grey(0).RGBA()
	assert.Zero(t, r0)
	assert.Zero(t, g0)
	assert.Zero(t, b0)

	r1, _, _, _ := grey(1).RGBA()
	assert.EqualValues(t, 0xffff, r1)

	// Out-of-range input clamps instead of wrapping.
	rLo, _, _, _ := grey(-3).RGBA()
	assert.Zero(t, rLo)
}

func TestNewColormap_GammaDarkensMidtones(t *testing.T) {
	t.Parallel()

	linear, err := NewColormap("grey", 1)
	require.NoError(t, err)
	gamma, err := NewColormap("grey", 2)
	require.NoError(t, err)

	rl, _, _, _ := linear(0.5).RGBA()
	rg, _, _, _ := gamma(0.5).RGBA()
	assert.Less(t, rg, rl)
}

func TestSpectrogramImage(t *testing.T) {
	t.Parallel()

	// Two bins, three columns: bin 0 dark, bin 1 bright.
	s := &spectrogram.Spectrogram{
		Data:       [][]float64{{0, 0, 0}, {1, 1, 1}},
		SampleRate: 8000,
		WindowSize: 2,
		HopSize:    1,
	}

	img, err := SpectrogramImage(s, "grey", 1)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 3, bounds.Dx())
	assert.Equal(t, 2, bounds.Dy())

	// Low frequency bin sits at the bottom row.
	rBottom, _, _, _ := img.At(0, 1).RGBA()
	rTop, _, _, _ := img.At(0, 0).RGBA()
	assert.Zero(t, rBottom)
	assert.EqualValues(t, 0xffff, rTop)
}

func TestSpectrogramImage_Empty(t *testing.T) {
	t.Parallel()

	s := &spectrogram.Spectrogram{SampleRate: 8000, WindowSize: 64, HopSize: 32}
	_, err := SpectrogramImage(s, "viridis", 1)
	assert.ErrorIs(t, err, ErrEmptySpectrogram)
}

func TestPSD(t *testing.T) {
	t.Parallel()

	p := spectrogram.DefaultParameters()
	p.WindowSize = 512
	p.Scale = spectrogram.ScalePSD

	psd, freqs, rate, err := PSD(sineBuffer(8000, 8000, 1000), p)
	require.NoError(t, err)

	assert.Equal(t, 8000, rate)
	assert.Len(t, psd, 512/2+1)
	require.Len(t, freqs, len(psd))
	assert.Equal(t, 0.0, freqs[0])
	assert.Equal(t, 4000.0, freqs[len(freqs)-1])

	// The tone bin carries more averaged power than a far-away bin.
	toneBin := int(math.Round(1000.0 / 8000.0 * 512))
	assert.Greater(t, psd[toneBin], psd[len(psd)-2])
}

func TestPSDPlot(t *testing.T) {
	t.Parallel()

	psd := []float64{-80, -40, -20, -40, -80}
	freqs := []float64{0, 1000, 2000, 3000, 4000}

	img, minDB, maxDB, err := PSDPlot(psd, freqs, nil, nil, DefaultPSDWidth, DefaultPSDHeight)
	require.NoError(t, err)

	assert.Equal(t, -80.0, minDB)
	assert.Equal(t, -20.0, maxDB)
	assert.Equal(t, DefaultPSDWidth, img.Bounds().Dx())
	assert.Equal(t, DefaultPSDHeight, img.Bounds().Dy())
}

func TestPSDPlot_FrequencyRange(t *testing.T) {
	t.Parallel()

	psd := []float64{-80, -40, -20, -40, -80}
	freqs := []float64{0, 1000, 2000, 3000, 4000}
	low, high := 900.0, 3100.0

	_, minDB, maxDB, err := PSDPlot(psd, freqs, &low, &high, 100, 100)
	require.NoError(t, err)

	// Bins outside [900, 3100] are excluded from the extremes.
	assert.Equal(t, -40.0, minDB)
	assert.Equal(t, -20.0, maxDB)

	narrowLow, narrowHigh := 4500.0, 5000.0
	_, _, _, err = PSDPlot(psd, freqs, &narrowLow, &narrowHigh, 100, 100)
	assert.ErrorIs(t, err, ErrEmptyFrequencyRange)
}

func TestEncodeImage_PicksFormatByWidth(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	small := image.NewRGBA(image.Rect(0, 0, 64, 64))
	mime, err := EncodeImage(&buf, small)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", mime)
	assert.Equal(t, "RIFF", buf.String()[:4])

	buf.Reset()
	wide := image.NewRGBA(image.Rect(0, 0, maxWebPWidth+1, 1))
	wide.Set(0, 0, color.RGBA{A: 0xff})
	mime, err = EncodeImage(&buf, wide)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
}
