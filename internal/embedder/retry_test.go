package embedder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxRetries: attempts,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2,
	}
}

func TestRetryWithBackoff_SucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := retryWithBackoff(context.Background(), fastRetry(3), func() (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	calls := 0
	got, err := retryWithBackoff(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_ExhaustsBudget(t *testing.T) {
	calls := 0
	wantErr := errors.New("permanent")
	_, err := retryWithBackoff(context.Background(), fastRetry(3), func() (int, error) {
		calls++
		return 0, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := retryWithBackoff(ctx, fastRetry(5), func() (int, error) {
		calls++
		cancel()
		return 0, errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "no retry after cancellation")
}

func TestDefaultRetryConfig_OneRetry(t *testing.T) {
	assert.Equal(t, 2, DefaultRetryConfig().MaxRetries)
}

func TestRetryConfigNormalized(t *testing.T) {
	c := RetryConfig{}.normalized()
	assert.Equal(t, 1, c.MaxRetries)
	assert.Positive(t, c.BaseDelay)
	assert.GreaterOrEqual(t, c.MaxDelay, c.BaseDelay)
	assert.GreaterOrEqual(t, c.Multiplier, 1.0)
}
