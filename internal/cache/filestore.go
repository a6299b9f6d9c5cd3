package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File names used inside the cache directory. The sidecar duplicates the
// payload fingerprint so operators can check cache freshness without
// parsing the JSON.
const (
	snapshotFileName    = "pool_embeddings.json"
	fingerprintFileName = "pool_fingerprint.txt"
)

// FileStore persists snapshots as a JSON file plus a fingerprint sidecar in
// a single directory. Writes go through a temp file and rename, so readers
// never see a partial snapshot even under concurrent matching runs.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed snapshot store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) snapshotPath() string {
	return filepath.Join(f.dir, snapshotFileName)
}

func (f *FileStore) fingerprintPath() string {
	return filepath.Join(f.dir, fingerprintFileName)
}

// Load reads the persisted snapshot. A missing file maps to ErrNotFound;
// undecodable JSON or a sidecar that disagrees with the payload maps to
// ErrCorrupt.
func (f *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.snapshotPath())
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if snap.Fingerprint == "" || len(snap.Vectors) == 0 {
		return nil, fmt.Errorf("%w: empty snapshot", ErrCorrupt)
	}

	// Sidecar disagreement means one of the two files was replaced without
	// the other; treat the pair as corrupt rather than guessing.
	sidecar, err := os.ReadFile(f.fingerprintPath())
	if err == nil && strings.TrimSpace(string(sidecar)) != snap.Fingerprint {
		return nil, fmt.Errorf("%w: fingerprint sidecar mismatch", ErrCorrupt)
	}

	return &snap, nil
}

// Save atomically replaces the snapshot and its sidecar.
func (f *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := writeFileAtomic(f.snapshotPath(), data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := writeFileAtomic(f.fingerprintPath(), []byte(snap.Fingerprint+"\n")); err != nil {
		return fmt.Errorf("write fingerprint sidecar: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (f *FileStore) Close() error {
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over the destination.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
