// SPDX-License-Identifier: EPL-2.0

package cache

import "time"

// Policy bundles the expiry clock and FIFO size bound shared by the cache
// implementations. The clock is injectable so expiry is testable without
// real sleeps.
type Policy struct {
	// TTL is the entry lifetime. Zero disables expiry.
	TTL time.Duration
	// MaxSize bounds live entries. Zero disables the bound.
	MaxSize int
	// Now returns the current time; nil means time.Now.
	Now func() time.Time
}

func (p Policy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// expired reports whether an entry inserted at stamp has outlived the TTL.
func (p Policy) expired(stamp time.Time) bool {
	return p.TTL > 0 && p.now().Sub(stamp) > p.TTL
}

// full reports whether a store holding n entries has no free slot left.
func (p Policy) full(n int) bool {
	return p.MaxSize > 0 && n >= p.MaxSize
}
