package crawler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterEnforcesDelay(t *testing.T) {
	delay := 50 * time.Millisecond
	limiter := NewRateLimiter(delay)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx, "https://shop.test/a"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "https://shop.test/b"))
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestRateLimiterDomainsAreIndependent(t *testing.T) {
	delay := 200 * time.Millisecond
	limiter := NewRateLimiter(delay)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx, "https://first.test/"))

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "https://second.test/"))
	assert.Less(t, time.Since(start), delay)
}

func TestRateLimiterContextCancelled(t *testing.T) {
	limiter := NewRateLimiter(time.Minute)

	require.NoError(t, limiter.Wait(context.Background(), "https://shop.test/"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx, "https://shop.test/")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiterNoDomain(t *testing.T) {
	limiter := NewRateLimiter(time.Minute)

	// A URL without a host is not rate limited
	require.NoError(t, limiter.Wait(context.Background(), "not-a-url"))
	require.NoError(t, limiter.Wait(context.Background(), "not-a-url"))
}
