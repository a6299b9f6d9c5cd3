package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a Store and counts calls that reach it.
type countingStore struct {
	inner Store
	loads int
	saves int
}

func (c *countingStore) Load(ctx context.Context) (*Snapshot, error) {
	c.loads++
	return c.inner.Load(ctx)
}

func (c *countingStore) Save(ctx context.Context, snap *Snapshot) error {
	c.saves++
	return c.inner.Save(ctx, snap)
}

func (c *countingStore) Close() error {
	return c.inner.Close()
}

func TestMemoryStore_ServesFromMemoryAfterSave(t *testing.T) {
	file, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	counting := &countingStore{inner: file}

	store, err := NewMemoryStore(counting, 4)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testSnapshot()))
	assert.Equal(t, 1, counting.saves)

	for i := 0; i < 3; i++ {
		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "abc123", got.Fingerprint)
	}
	assert.Equal(t, 0, counting.loads, "repeated loads should not hit disk")
}

func TestMemoryStore_FallsThroughOnColdStart(t *testing.T) {
	file, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, file.Save(context.Background(), testSnapshot()))

	counting := &countingStore{inner: file}
	store, err := NewMemoryStore(counting, 4)
	require.NoError(t, err)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.Fingerprint)
	assert.Equal(t, 1, counting.loads)

	// Second load is served from memory.
	_, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counting.loads)
}

func TestMemoryStore_PropagatesNotFound(t *testing.T) {
	file, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	store, err := NewMemoryStore(file, 4)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_SaveErrorDoesNotCache(t *testing.T) {
	store, err := NewMemoryStore(failingStore{}, 4)
	require.NoError(t, err)

	err = store.Save(context.Background(), testSnapshot())
	assert.Error(t, err)

	_, err = store.Load(context.Background())
	assert.Error(t, err, "a failed save must not leave a memory entry")
}

type failingStore struct{}

func (failingStore) Load(context.Context) (*Snapshot, error) { return nil, ErrNotFound }
func (failingStore) Save(context.Context, *Snapshot) error {
	return errors.New("disk full")
}
func (failingStore) Close() error { return nil }
