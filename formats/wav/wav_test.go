// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"
)

func decodeAll(t *testing.T, data []byte) ([]float32, int, int) {
	t.Helper()

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	var out []float32
	buf := make([]float32, 1024)
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err == io.EOF {
			return out, src.SampleRate(), src.Channels()
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestWrite_DecodeRoundTrip(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 2000)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * 440 * float64(i/2) / 8000))
	}

	var buf bytes.Buffer
	if err := Write(&buf, 8000, 2, 16, samples); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, rate, channels := decodeAll(t, buf.Bytes())

	if rate != 8000 || channels != 2 {
		t.Errorf("decoded format = %d Hz / %d ch, want 8000 Hz / 2 ch", rate, channels)
	}
	if len(got) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(got), len(samples))
	}
	for i := range got {
		if math.Abs(float64(got[i]-samples[i])) > 1.0/32000 {
			t.Fatalf("sample %d = %v, want ≈%v", i, got[i], samples[i])
		}
	}
}

func TestNewHeader_Layout(t *testing.T) {
	t.Parallel()

	const dataSize = 441000 * 2
	header := NewHeader(dataSize, 44100, 1, 16)

	if len(header) != HeaderSize {
		t.Fatalf("header length = %d, want %d", len(header), HeaderSize)
	}

	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}

	chunkSize := binary.LittleEndian.Uint32(header[4:8])
	if chunkSize != dataSize+36 {
		t.Errorf("ChunkSize = %d, want data_size+36 = %d", chunkSize, dataSize+36)
	}

	if got := binary.LittleEndian.Uint16(header[20:22]); got != 1 {
		t.Errorf("AudioFormat = %d, want 1 (PCM)", got)
	}
	if got := binary.LittleEndian.Uint32(header[24:28]); got != 44100 {
		t.Errorf("SampleRate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint32(header[28:32]); got != 44100*2 {
		t.Errorf("ByteRate = %d, want %d", got, 44100*2)
	}
	if got := binary.LittleEndian.Uint16(header[32:34]); got != 2 {
		t.Errorf("BlockAlign = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(header[40:44]); got != dataSize {
		t.Errorf("data_size = %d, want %d", got, dataSize)
	}
}

func TestEncodePCM_Depths(t *testing.T) {
	t.Parallel()

	samples := []float32{0, 0.5, -0.5, 1}

	for _, tt := range []struct {
		bitDepth  int
		wantBytes int
	}{
		{8, 4},
		{16, 8},
		{32, 16},
	} {
		payload, err := EncodePCM(samples, tt.bitDepth)
		if err != nil {
			t.Fatalf("EncodePCM(%d-bit) error = %v", tt.bitDepth, err)
		}
		if len(payload) != tt.wantBytes {
			t.Errorf("EncodePCM(%d-bit) = %d bytes, want %d", tt.bitDepth, len(payload), tt.wantBytes)
		}
	}

	if _, err := EncodePCM(samples, 24); err != ErrUnsupportedBitDepth {
		t.Errorf("EncodePCM(24-bit) error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestDecoder_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("definitely not a wav file")))
	if err == nil {
		t.Error("Decode() accepted garbage input")
	}
}
