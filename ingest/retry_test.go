package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff_SucceedsFirstTry(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return nil
	}, 7, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_SucceedsOnLastAttempt(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		if calls < 7 {
			return errors.New("transient")
		}
		return nil
	}, 7, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 7, calls)
}

func TestRetryWithBackoff_ExhaustsAttempts(t *testing.T) {
	calls := 0
	lastErr := errors.New("still broken")
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return lastErr
	}, 7, time.Millisecond)

	assert.ErrorIs(t, err, lastErr)
	// No 8th attempt
	assert.Equal(t, 7, calls)
}

func TestRetryWithBackoff_DelaysDouble(t *testing.T) {
	base := 10 * time.Millisecond
	var attemptTimes []time.Time

	RetryWithBackoff(context.Background(), func() error {
		attemptTimes = append(attemptTimes, time.Now())
		return errors.New("fail")
	}, 4, base)

	require.Len(t, attemptTimes, 4)

	// Waits of 10, 20, 40ms between the four attempts
	expected := base
	for i := 1; i < len(attemptTimes); i++ {
		gap := attemptTimes[i].Sub(attemptTimes[i-1])
		assert.GreaterOrEqual(t, gap, expected, "gap before attempt %d", i+1)
		expected *= 2
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return errors.New("fail")
	}, 7, time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}
