package cache

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no cache snapshot has been persisted yet
	ErrNotFound = errors.New("cache snapshot not found")
	// ErrCorrupt is returned when a persisted snapshot cannot be decoded or
	// its fingerprint sidecar disagrees with the payload
	ErrCorrupt = errors.New("cache snapshot corrupt")
)

// Snapshot is a whole-pool embedding cache entry: one vector per matching
// question per candidate, plus the pool fingerprint and provider metadata
// it was computed under. Snapshots are written wholesale and never patched
// per-row.
type Snapshot struct {
	Fingerprint string                 `json:"fingerprint"`
	Provider    string                 `json:"provider"`
	Model       string                 `json:"model"`
	Dimension   int                    `json:"dimension"`
	Questions   int                    `json:"questions"`
	Vectors     map[string][][]float32 `json:"vectors"` // candidate ID -> per-question vectors
}

// Valid reports whether this snapshot can serve a pool with the given
// fingerprint under the given provider, model and dimensions. Any mismatch
// invalidates the entire snapshot: two models can share a dimension while
// embedding into unrelated vector spaces, so provider and model are part of
// the validity check, not just informational metadata.
func (s *Snapshot) Valid(fingerprint, provider, model string, dimension, questions int) bool {
	if s == nil {
		return false
	}
	return s.Fingerprint == fingerprint &&
		s.Provider == provider &&
		s.Model == model &&
		s.Dimension == dimension &&
		s.Questions == questions &&
		len(s.Vectors) > 0
}

// Store persists pool embedding snapshots. Implementations must make Save
// atomic: a concurrent Load never observes a half-written snapshot. Load
// returns ErrNotFound when nothing has been persisted and ErrCorrupt when
// the persisted state is unreadable; callers recover from both by a full
// recompute.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Close() error
}
