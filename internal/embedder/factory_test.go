package embedder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvProvider, "")
	t.Setenv(EnvOpenAIAPIKey, "")
	t.Setenv(EnvGeminiAPIKey, "")
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("openai", func(t *testing.T) {
		e, err := New(ctx, Config{Provider: "openai", APIKey: "test-key"})
		require.NoError(t, err)
		defer e.Close()
		assert.Equal(t, ProviderOpenAI, e.Provider())
	})

	t.Run("openai without key", func(t *testing.T) {
		_, err := New(ctx, Config{Provider: "openai"})
		assert.Error(t, err)
	})

	t.Run("local", func(t *testing.T) {
		e, err := New(ctx, Config{Provider: "local"})
		require.NoError(t, err)
		defer e.Close()
		assert.Equal(t, ProviderLocal, e.Provider())
	})

	t.Run("case insensitive", func(t *testing.T) {
		e, err := New(ctx, Config{Provider: "Local"})
		require.NoError(t, err)
		defer e.Close()
		assert.Equal(t, ProviderLocal, e.Provider())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(ctx, Config{Provider: "cohere"})
		assert.ErrorIs(t, err, ErrUnsupportedModel)
	})
}

func TestNewFromEnv(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to local", func(t *testing.T) {
		clearProviderEnv(t)

		e, err := NewFromEnv(ctx)
		require.NoError(t, err)
		defer e.Close()
		assert.Equal(t, ProviderLocal, e.Provider())
	})

	t.Run("openai key detection", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv(EnvOpenAIAPIKey, "test-key")

		e, err := NewFromEnv(ctx)
		require.NoError(t, err)
		defer e.Close()
		assert.Equal(t, ProviderOpenAI, e.Provider())
	})

	t.Run("explicit provider wins", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv(EnvOpenAIAPIKey, "test-key")
		t.Setenv(EnvProvider, "local")

		e, err := NewFromEnv(ctx)
		require.NoError(t, err)
		defer e.Close()
		assert.Equal(t, ProviderLocal, e.Provider())
	})
}

func TestDetectProvider(t *testing.T) {
	clearProviderEnv(t)
	assert.Equal(t, ProviderLocal, DetectProvider())

	t.Setenv(EnvOpenAIAPIKey, "k")
	assert.Equal(t, ProviderOpenAI, DetectProvider())

	t.Setenv(EnvProvider, "GEMINI")
	assert.Equal(t, "gemini", DetectProvider())
}
