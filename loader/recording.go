// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"strconv"
)

// Recording is the resolved, read-only metadata the persistence layer
// supplies for one acoustic recording on disk.
type Recording struct {
	ID   int64
	Hash string
	// Path of the audio file, relative to the deployment's audio root.
	Path     string
	Duration float64
	// SampleRate and Channels as stored in the file.
	SampleRate int
	Channels   int
	// TimeExpansion is the recorder's time-expansion factor. Ultrasonic
	// recorders slow the signal down before writing it, so the true
	// sample rate is the file's rate multiplied by this factor. Values
	// <= 0 and 1 mean no expansion.
	TimeExpansion float64
}

// Fingerprint derives the stable cache key for a recording's decoded
// audio from its identity and content hash.
func Fingerprint(rec Recording) string {
	h := sha1.New()
	io.WriteString(h, strconv.FormatInt(rec.ID, 10))
	io.WriteString(h, ":")
	io.WriteString(h, rec.Hash)
	return hex.EncodeToString(h.Sum(nil))
}
