package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry(t *testing.T) {
	opts := RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("flaky")
			}
			return nil
		}, opts)
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		permanent := &RetryableError{Err: errors.New("bad request"), Retryable: false}
		err := WithRetry(context.Background(), func() error {
			calls++
			return permanent
		}, opts)
		assert.Same(t, permanent, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("reports exhaustion", func(t *testing.T) {
		cause := errors.New("down")
		err := WithRetry(context.Background(), func() error { return cause }, opts)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error { return errors.New("down") }, RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Hour,
		})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("stops when the next wait passes the deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		calls := 0
		start := time.Now()
		err := WithRetry(ctx, func() error {
			calls++
			return fmt.Errorf("busy: %w", ErrRateLimit)
		}, RetryOptions{MaxAttempts: 5, MaxDelay: time.Minute})
		assert.ErrorIs(t, err, ErrRateLimit)
		assert.Equal(t, 1, calls)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})
}

func TestRetryOptions_Pause(t *testing.T) {
	opts := RetryOptions{InitialDelay: time.Second, MaxDelay: 3 * time.Second}.withDefaults()

	assert.Equal(t, time.Second, opts.pause(0, errors.New("down")))
	assert.Equal(t, 2*time.Second, opts.pause(time.Second, errors.New("down")))
	assert.Equal(t, 3*time.Second, opts.pause(2*time.Second, errors.New("down")))
	assert.Equal(t, 3*time.Second, opts.pause(0, ErrRateLimit))
}

func TestErrors(t *testing.T) {
	err := fmt.Errorf("saving: %w", NewValidationError("name", "Product name is required"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "name", validation.Field)

	userErr := NewUserError("Connect your Shopify store in Settings first.", ErrNotConnected)
	assert.ErrorIs(t, userErr, ErrNotConnected)
	assert.Equal(t, "Connect your Shopify store in Settings first.", UserMessage(fmt.Errorf("export: %w", userErr)))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))

	assert.True(t, IsRetryable(fmt.Errorf("call: %w", ErrRateLimit)))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("503"), Retryable: true}))
	assert.False(t, IsRetryable(errors.New("nope")))
}

func TestLogger(t *testing.T) {
	level, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var buf bytes.Buffer
	prev := slog.Default()
	defer slog.SetDefault(prev)

	logger := setupLogger(&buf, slog.LevelInfo, "json")
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"key":"value"`)
}
