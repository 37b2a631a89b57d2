package collector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterMinDelay(t *testing.T) {
	rl := NewRateLimiter(20*time.Millisecond, nil)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, rl.Wait(ctx))
	require.NoError(t, rl.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestRateLimiterWaitsForReset(t *testing.T) {
	rl := NewRateLimiter(0, nil)
	rl.UpdateLimit(0, time.Now().Add(30*time.Millisecond))

	start := time.Now()
	require.NoError(t, rl.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 25*time.Millisecond)

	remaining, _, err := rl.CheckLimit()
	require.NoError(t, err)
	assert.Equal(t, -1, remaining)
}

func TestRateLimiterCancelledWhileWaiting(t *testing.T) {
	rl := NewRateLimiter(0, nil)
	rl.UpdateLimit(0, time.Now().Add(time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiterPastResetDoesNotBlock(t *testing.T) {
	rl := NewRateLimiter(0, nil)
	rl.UpdateLimit(0, time.Now().Add(-time.Minute))

	done := make(chan error, 1)
	go func() { done <- rl.Wait(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Wait blocked on an expired reset time")
	}
}
