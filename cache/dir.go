// SPDX-License-Identifier: EPL-2.0

package cache

import (
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const blobExt = ".blob"

// Dir is the multi-worker implementation: a shared directory acts as the
// key→bytes map and file modification times as the key→timestamp map.
//
// There is no cross-process locking. The sweep-then-evict-then-insert
// sequence is not atomic across workers, so under concurrent writers the
// size bound can be transiently exceeded and two workers can decode and
// insert the same key; last write wins. Both are accepted inefficiencies,
// not correctness bugs, because decoding is deterministic.
type Dir struct {
	dir    string
	policy Policy
	log    *logrus.Entry
}

// NewDir opens (creating if needed) a directory-backed cache.
func NewDir(dir string, policy Policy) (*Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Dir{
		dir:    dir,
		policy: policy,
		log:    logrus.WithFields(logrus.Fields{"component": "cache", "dir": dir}),
	}, nil
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.dir, url.PathEscape(key)+blobExt)
}

func (d *Dir) Get(key string) ([]byte, bool) {
	path := d.path(key)

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if d.policy.expired(info.ModTime()) {
		d.log.WithField("key", key).Debug("purging expired entry on read")
		os.Remove(path)
		return nil, false
	}

	value, err := os.ReadFile(path)
	if err != nil {
		// Lost the race against another worker's eviction.
		return nil, false
	}
	return value, true
}

func (d *Dir) Contains(key string) bool {
	info, err := os.Stat(d.path(key))
	if err != nil {
		return false
	}
	if d.policy.expired(info.ModTime()) {
		os.Remove(d.path(key))
		return false
	}
	return true
}

func (d *Dir) Set(key string, value []byte) {
	d.sweep()
	// Overwriting a present key reuses its own blob; only a new key can
	// force an eviction.
	if _, err := os.Stat(d.path(key)); err != nil {
		d.evict()
	}

	// Write-then-rename keeps concurrent readers from observing a
	// half-written blob.
	tmp, err := os.CreateTemp(d.dir, "insert-*")
	if err != nil {
		d.log.WithError(err).Warn("cache insert failed")
		return
	}
	_, err = tmp.Write(value)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), d.path(key))
	}
	if err != nil {
		d.log.WithError(err).WithField("key", key).Warn("cache insert failed")
		os.Remove(tmp.Name())
		return
	}

	now := d.policy.now()
	if err := os.Chtimes(d.path(key), now, now); err != nil {
		d.log.WithError(err).WithField("key", key).Warn("stamping cache entry failed")
	}
}

func (d *Dir) Pop(key string) ([]byte, bool) {
	value, ok := d.Get(key)
	os.Remove(d.path(key))
	return value, ok
}

func (d *Dir) Clear() {
	for _, e := range d.entries() {
		os.Remove(filepath.Join(d.dir, e.Name()))
	}
}

func (d *Dir) Len() int {
	n := 0
	for _, e := range d.entries() {
		if info, err := e.Info(); err == nil && !d.policy.expired(info.ModTime()) {
			n++
		}
	}
	return n
}

func (d *Dir) entries() []os.DirEntry {
	all, err := os.ReadDir(d.dir)
	if err != nil {
		d.log.WithError(err).Warn("listing cache directory failed")
		return nil
	}

	blobs := all[:0]
	for _, e := range all {
		if !e.IsDir() && strings.HasSuffix(e.Name(), blobExt) {
			blobs = append(blobs, e)
		}
	}
	return blobs
}

// sweep removes every expired entry.
func (d *Dir) sweep() {
	for _, e := range d.entries() {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if d.policy.expired(info.ModTime()) {
			d.log.WithField("entry", e.Name()).Debug("sweeping expired entry")
			os.Remove(filepath.Join(d.dir, e.Name()))
		}
	}
}

// evict removes oldest-inserted entries until one slot is free.
func (d *Dir) evict() {
	entries := d.entries()
	if !d.policy.full(len(entries)) {
		return
	}

	sort.Slice(entries, func(i, j int) bool {
		a, aerr := entries[i].Info()
		b, berr := entries[j].Info()
		if aerr != nil || berr != nil {
			return aerr == nil
		}
		return a.ModTime().Before(b.ModTime())
	})

	for len(entries) > 0 && d.policy.full(len(entries)) {
		d.log.WithField("entry", entries[0].Name()).Debug("evicting oldest entry")
		os.Remove(filepath.Join(d.dir, entries[0].Name()))
		entries = entries[1:]
	}
}
