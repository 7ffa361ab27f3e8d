package http

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClientForUnreachableServer() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestLocalRateLimiter_PerKey(t *testing.T) {
	limiter := NewLocalRateLimiter(2, time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := limiter.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	ok, _ = limiter.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)
}

func TestRedisRateLimiter_ReportsConnectionErrors(t *testing.T) {
	client := redisClientForUnreachableServer()
	defer client.Close()

	_, err := NewRedisRateLimiter(client, 5, time.Minute).Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}

func TestRedisRateLimiter_WindowAlwaysExpires(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()

	limiter := NewRedisRateLimiter(client, 2, time.Minute)
	limiter.prefix = "ratelimit:test:" + uuid.NewString() + ":"
	key := limiter.prefix + "10.0.0.1"
	defer client.Del(ctx, key)

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
