package ratelimit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"morgenstar/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	limiter, ok := NewMemoryLimiter().(*memoryLimiter)
	require.True(t, ok)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	ctx := context.Background()

	for i := range 3 {
		result, err := limiter.Allow(ctx, "10.0.0.1-/api/orders", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2-i, result.Remaining)
	}

	now = now.Add(20 * time.Second)
	result, err := limiter.Allow(ctx, "10.0.0.1-/api/orders", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 40*time.Second, result.RetryAfter)

	// Other keys have their own budget.
	result, err = limiter.Allow(ctx, "10.0.0.2-/api/orders", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	now = now.Add(40 * time.Second)
	result, err = limiter.Allow(ctx, "10.0.0.1-/api/orders", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, 2, result.Remaining)
}

func TestMemoryLimiter_SweepsExpiredWindows(t *testing.T) {
	limiter, ok := NewMemoryLimiter().(*memoryLimiter)
	require.True(t, ok)

	now := time.Now()
	limiter.now = func() time.Time { return now }

	_, err := limiter.Allow(context.Background(), "a", 10, time.Minute)
	require.NoError(t, err)

	now = now.Add(sweepInterval + time.Minute)
	_, err = limiter.Allow(context.Background(), "b", 10, time.Minute)
	require.NoError(t, err)

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.windows, "a")
	assert.Contains(t, limiter.windows, "b")
}

func TestNew_SelectsStore(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	limiter, err := New(Params{Lifecycle: fxtest.NewLifecycle(t), Config: &config.Config{}, Logger: logger})
	require.NoError(t, err)
	_, ok := limiter.(*memoryLimiter)
	assert.True(t, ok)

	_, err = New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    &config.Config{RateLimit: &config.RateLimitConfig{Store: "redis"}},
		Logger:    logger,
	})
	assert.ErrorContains(t, err, "redis address is required")

	_, err = New(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config:    &config.Config{RateLimit: &config.RateLimitConfig{Store: "etcd"}},
		Logger:    logger,
	})
	assert.ErrorContains(t, err, "unknown rate limit store")
}

// TestRedisLimiter_SlidingWindow runs against a real Redis when REDIS_ADDR is set.
func TestRedisLimiter_SlidingWindow(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set, skipping Redis integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not reachable: %v", err)
	}

	limiter := NewRedisLimiter(client)
	key := "test-" + uuid.NewString()

	for i := range 3 {
		result, err := limiter.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2-i, result.Remaining)
	}

	result, err := limiter.Allow(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, result.RetryAfter, time.Minute)
}
