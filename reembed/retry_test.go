package reembed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryFirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return nil
	}, 3, 10*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryEventualSuccess(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, 5, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryBudgetExhausted(t *testing.T) {
	attempts := 0
	wantErr := errors.New("persistent")
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return wantErr
	}, 3, time.Millisecond)

	assert.Equal(t, wantErr, err, "last attempt's error is returned")
	assert.Equal(t, 3, attempts)
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := RetryWithBackoff(ctx, func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("failing")
	}, 10, 5*time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, attempts, 2)
}

func TestRetryBackoffGrows(t *testing.T) {
	attempts := 0
	var gaps []time.Duration
	last := time.Now()

	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		if attempts > 1 {
			gaps = append(gaps, time.Since(last))
		}
		last = time.Now()
		if attempts < 4 {
			return errors.New("failing")
		}
		return nil
	}, 5, 10*time.Millisecond)

	require.NoError(t, err)
	require.Len(t, gaps, 3)
	assert.Greater(t, gaps[1], gaps[0])
	assert.Greater(t, gaps[2], gaps[1])
}

func TestRetryInvalidBudget(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		return errors.New("failing")
	}

	assert.ErrorIs(t, RetryWithBackoff(context.Background(), op, 0, time.Millisecond), ErrInvalidMaxAttempts)
	assert.ErrorIs(t, RetryWithBackoff(context.Background(), op, -1, time.Millisecond), ErrInvalidMaxAttempts)
	assert.Zero(t, attempts)
}
