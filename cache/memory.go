// SPDX-License-Identifier: EPL-2.0

package cache

import (
	"sync"
	"time"
)

// Memory is the in-process implementation: a key→blob map and a parallel
// key→timestamp map behind one mutex. Suitable for tests and single-worker
// deployments; workers do not share it.
type Memory struct {
	policy Policy

	mtx    sync.Mutex
	values map[string][]byte
	stamps map[string]time.Time
}

func NewMemory(policy Policy) *Memory {
	return &Memory{
		policy: policy,
		values: make(map[string][]byte),
		stamps: make(map[string]time.Time),
	}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	stamp, ok := m.stamps[key]
	if !ok {
		return nil, false
	}
	if m.policy.expired(stamp) {
		m.drop(key)
		return nil, false
	}
	return m.values[key], true
}

func (m *Memory) Contains(key string) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	stamp, ok := m.stamps[key]
	if !ok {
		return false
	}
	if m.policy.expired(stamp) {
		m.drop(key)
		return false
	}
	return true
}

func (m *Memory) Set(key string, value []byte) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	// Sweep everything expired first, then evict oldest-inserted entries
	// until one slot is free.
	for k, stamp := range m.stamps {
		if m.policy.expired(stamp) {
			m.drop(k)
		}
	}

	// Overwriting a present key reuses its own slot; only a new key can
	// force an eviction.
	if _, exists := m.stamps[key]; !exists {
		for m.policy.full(len(m.values)) {
			oldest := ""
			var oldestStamp time.Time
			for k, stamp := range m.stamps {
				if oldest == "" || stamp.Before(oldestStamp) {
					oldest = k
					oldestStamp = stamp
				}
			}
			if oldest == "" {
				break
			}
			m.drop(oldest)
		}
	}

	m.values[key] = value
	m.stamps[key] = m.policy.now()
}

func (m *Memory) Pop(key string) ([]byte, bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	value, ok := m.values[key]
	if !ok {
		return nil, false
	}
	live := !m.policy.expired(m.stamps[key])
	m.drop(key)
	if !live {
		return nil, false
	}
	return value, true
}

func (m *Memory) Clear() {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.values = make(map[string][]byte)
	m.stamps = make(map[string]time.Time)
}

func (m *Memory) Len() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	n := 0
	for _, stamp := range m.stamps {
		if !m.policy.expired(stamp) {
			n++
		}
	}
	return n
}

// drop removes key from both maps. Caller holds the mutex.
func (m *Memory) drop(key string) {
	delete(m.values, key)
	delete(m.stamps, key)
}
