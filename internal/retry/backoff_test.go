package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "notegram/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		MaxAttempts:  5,
	})

	attempts := 0
	err := b.Retry(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryReturnsLastError(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2.0,
		MaxAttempts:  3,
	})

	attempts := 0
	err := b.Retry(context.Background(), func() error {
		attempts++
		return errors.New("persistent")
	})

	assert.EqualError(t, err, "persistent")
	assert.Equal(t, 3, attempts)
}

func TestRetryFailsFastOnNonRetryableError(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
		MaxAttempts:  5,
	})

	attempts := 0
	err := b.Retry(context.Background(), func() error {
		attempts++
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "bad token")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.False(t, apperrors.IsRetryable(err))
}

func TestRetryKeepsRetryingRetryableError(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2.0,
		MaxAttempts:  3,
	})

	attempts := 0
	err := b.Retry(context.Background(), func() error {
		attempts++
		return apperrors.WrapRetryable(errors.New("connection refused"), apperrors.ErrCodeTelegramAPI, "failed to initialize bot")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestRetryRespectsContextCancellation(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		InitialDelay: time.Hour,
		MaxDelay:     time.Hour,
		Multiplier:   2.0,
		MaxAttempts:  5,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := b.Retry(ctx, func() error {
		return errors.New("always fails")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDelayGrowthIsCapped(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		MaxAttempts:  10,
	})

	assert.Equal(t, 100*time.Millisecond, b.GetNextDelay(1))
	assert.Equal(t, 200*time.Millisecond, b.GetNextDelay(2))
	assert.Equal(t, 800*time.Millisecond, b.GetNextDelay(4))
	assert.Equal(t, time.Second, b.GetNextDelay(8))
}

func TestDelayWithJitterStaysInBounds(t *testing.T) {
	b := NewBackoff(BackoffConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		MaxAttempts:  10,
		Jitter:       true,
	})

	for i := 0; i < 50; i++ {
		d := b.GetNextDelay(3)
		assert.GreaterOrEqual(t, d, 300*time.Millisecond)
		assert.LessOrEqual(t, d, 500*time.Millisecond)
	}
}
