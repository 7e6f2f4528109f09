// SPDX-License-Identifier: EPL-2.0

// Package cache provides the shared store of fully decoded audio blobs.
//
// Values are opaque serialized byte slices; the cache never interprets
// payload structure. Expiry is lazy (checked on every read and containment
// test) and eviction is FIFO by insertion time, swept before each insert.
// The Dir implementation shares entries between worker processes through a
// common directory without any cross-process locking, so the size bound
// and TTL are best-effort under concurrent writers; duplicated decode work
// for the same key is accepted because decoding is deterministic.
package cache

// Shared is the cross-request cache contract. A nil-safe no-op
// implementation (Nop) is used when no cache is configured.
type Shared interface {
	// Get returns the blob stored under key, or ok=false on a miss.
	// An expired entry is treated as absent and purged on touch.
	Get(key string) (value []byte, ok bool)
	// Set stores value under key, sweeping expired entries and evicting
	// the oldest-inserted ones first when the store is full.
	Set(key string, value []byte)
	// Contains reports whether a live entry exists for key.
	Contains(key string) bool
	// Pop removes and returns the entry for key.
	Pop(key string) (value []byte, ok bool)
	// Clear drops every entry.
	Clear()
	// Len counts live (non-expired) entries.
	Len() int
}

// Nop is the disabled-cache implementation: gets always miss and writes
// are silently dropped. Correctness is preserved, only reuse is lost.
type Nop struct{}

func (Nop) Get(string) ([]byte, bool) { return nil, false }
func (Nop) Set(string, []byte)        {}
func (Nop) Contains(string) bool      { return false }
func (Nop) Pop(string) ([]byte, bool) { return nil, false }
func (Nop) Clear()                    {}
func (Nop) Len() int                  { return 0 }
