package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

// RateLimiter decides whether another request from key is allowed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisRateLimiter is a fixed-window counter shared by every instance.
type RedisRateLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	prefix string
}

// NewRedisRateLimiter allows limit requests per key per window.
func NewRedisRateLimiter(client redis.Cmdable, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: int64(limit), window: window, prefix: "ratelimit:auth:"}
}

// Allow opens the window with SET NX EX and increments it in one MULTI, so a
// counter never exists without a TTL.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, l.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= l.limit, nil
}

// LocalRateLimiter is a per-process token bucket per key.
type LocalRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*localEntry
	every     rate.Limit
	burst     int
	idleAfter time.Duration
	lastSweep time.Time
}

type localEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewLocalRateLimiter refills limit tokens per window, with a burst of limit.
func NewLocalRateLimiter(limit int, window time.Duration) *LocalRateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &LocalRateLimiter{
		limiters:  make(map[string]*localEntry),
		every:     rate.Every(window / time.Duration(limit)),
		burst:     limit,
		idleAfter: window * 10,
		lastSweep: time.Now(),
	}
}

func (l *LocalRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > l.idleAfter {
		for k, e := range l.limiters {
			if now.Sub(e.lastSeen) > l.idleAfter {
				delete(l.limiters, k)
			}
		}
		l.lastSweep = now
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &localEntry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1), nil
}

// RateLimit throttles requests per client IP. Limiter failures let the request through.
func RateLimit(limiter RateLimiter, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if !allowed {
			return apperrors.NewRateLimited()
		}
		return c.Next()
	}
}
