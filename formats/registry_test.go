// SPDX-License-Identifier: EPL-2.0

package formats

import (
	"bytes"
	"io"
	"testing"

	"github.com/trackIT-Systems/sonari-sub000/formats/wav"
)

func TestNewRegistry_KnownExtensions(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	for _, ext := range []string{"wav", "flac", "aiff", "aif", "mp3", "ogg", "oga"} {
		if _, ok := r.Get(ext); !ok {
			t.Errorf("no decoder registered for %q", ext)
		}
	}

	if _, ok := r.Get("opus"); ok {
		t.Error("unexpected decoder registered for \"opus\"")
	}
}

func TestNewRegistry_DecodesWav(t *testing.T) {
	t.Parallel()

	var file bytes.Buffer
	if err := wav.Write(&file, 22050, 1, 16, make([]float32, 512)); err != nil {
		t.Fatalf("wav.Write() error = %v", err)
	}

	r := NewRegistry()
	dec, ok := r.ForPath("deployment-3/2024-05-12_210000.wav")
	if !ok {
		t.Fatal("ForPath() found no decoder for .wav")
	}

	src, err := dec.Decode(bytes.NewReader(file.Bytes()))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	total := 0
	buf := make([]float32, 128)
	for {
		n, err := src.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if total != 512 {
		t.Errorf("decoded %d samples, want 512", total)
	}
}
