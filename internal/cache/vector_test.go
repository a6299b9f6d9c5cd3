package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorSerialization(t *testing.T) {
	vectors := [][]float32{
		{0.1, 0.2, 0.3},
		{-1.5, 0, 1.5},
		{},
	}

	for _, v := range vectors {
		blob := SerializeVector(v)
		require.Len(t, blob, len(v)*4)
		got := DeserializeVector(blob)
		assert.Equal(t, v, got)
	}
}

func TestDeserializeVector_TruncatedBlob(t *testing.T) {
	blob := SerializeVector([]float32{1, 2, 3})
	// A truncated blob decodes only the whole floats it contains.
	got := DeserializeVector(blob[:10])
	assert.Len(t, got, 2)
}
