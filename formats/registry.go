// SPDX-License-Identifier: EPL-2.0

// Package formats wires every shipped decoder into an extension-keyed
// registry. The set covers what long-term acoustic recorders and field
// workflows actually produce: WAV first, then FLAC, AIFF, MP3 and Ogg
// Vorbis.
package formats

import (
	"github.com/trackIT-Systems/sonari-sub000/audio"
	"github.com/trackIT-Systems/sonari-sub000/formats/aiff"
	"github.com/trackIT-Systems/sonari-sub000/formats/flac"
	"github.com/trackIT-Systems/sonari-sub000/formats/mp3"
	"github.com/trackIT-Systems/sonari-sub000/formats/vorbis"
	"github.com/trackIT-Systems/sonari-sub000/formats/wav"
)

// NewRegistry returns a registry with all built-in decoders registered.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()

	r.Register("wav", wav.Decoder{})
	r.Register("flac", flac.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})

	return r
}
