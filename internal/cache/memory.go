package cache

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryStore layers an in-process LRU of snapshots over a persistent
// store, keyed by fingerprint, so back-to-back matching requests against an
// unchanged pool skip disk entirely. Validity is still re-checked by
// fingerprint on every use, so a stale entry only costs a recompute.
type MemoryStore struct {
	inner Store
	lru   *lru.Cache[string, *Snapshot]
	mu    sync.Mutex
	last  string // fingerprint of the most recently loaded/saved snapshot
}

// NewMemoryStore wraps inner with an LRU of up to size snapshots.
func NewMemoryStore(inner Store, size int) (*MemoryStore, error) {
	if size <= 0 {
		size = 4
	}
	l, err := lru.New[string, *Snapshot](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{inner: inner, lru: l}, nil
}

// Load returns the most recently seen snapshot if still held in memory,
// otherwise falls through to the persistent store.
func (m *MemoryStore) Load(ctx context.Context) (*Snapshot, error) {
	m.mu.Lock()
	if m.last != "" {
		if snap, ok := m.lru.Get(m.last); ok {
			m.mu.Unlock()
			return snap, nil
		}
	}
	m.mu.Unlock()

	snap, err := m.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.lru.Add(snap.Fingerprint, snap)
	m.last = snap.Fingerprint
	m.mu.Unlock()
	return snap, nil
}

// Save persists through to the inner store and refreshes the memory layer.
func (m *MemoryStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := m.inner.Save(ctx, snap); err != nil {
		return err
	}
	m.mu.Lock()
	m.lru.Add(snap.Fingerprint, snap)
	m.last = snap.Fingerprint
	m.mu.Unlock()
	return nil
}

// Close closes the inner store.
func (m *MemoryStore) Close() error {
	return m.inner.Close()
}
