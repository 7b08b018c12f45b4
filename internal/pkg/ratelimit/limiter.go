// Package ratelimit implements a Redis-backed fixed-window request limiter.
// The limiter fails open: if Redis is unreachable a request is allowed rather
// than rejected, so a cache outage degrades protection instead of taking the
// API down.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter enforces a per-client request budget within a fixed time window.
type Limiter struct {
	client *redis.Client
	logger *slog.Logger

	maxRequests int
	window      time.Duration
}

// NewLimiter creates a limiter backed by the given Redis client.
// maxRequests is the budget per client per window.
func NewLimiter(client *redis.Client, maxRequests int, window time.Duration, logger *slog.Logger) *Limiter {
	return &Limiter{
		client:      client,
		logger:      logger.With("component", "rate_limiter"),
		maxRequests: maxRequests,
		window:      window,
	}
}

// Ping verifies connectivity to the Redis backend. Used by the startup retry
// guard before the limiter is put in the request path.
func (l *Limiter) Ping(ctx context.Context) error {
	if l.client == nil {
		return fmt.Errorf("rate limiter has no redis client")
	}
	return l.client.Ping(ctx).Err()
}

// Allow reports whether the client identified by clientID may perform another
// request in the current window. Backend errors are logged and treated as
// allowed.
func (l *Limiter) Allow(ctx context.Context, clientID string) bool {
	if l.client == nil {
		return true
	}

	window := time.Now().Unix() / int64(l.window.Seconds())
	key := fmt.Sprintf("ratelimit:%s:%d", clientID, window)

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.ErrorContext(ctx, "Rate limit check failed, allowing request", "error", err)
		return true
	}

	return count.Val() <= int64(l.maxRequests)
}
