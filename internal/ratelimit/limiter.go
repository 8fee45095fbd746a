// Package ratelimit implements a fixed-window request limiter kept in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "trivia:ratelimit:"

// Counter increments the hit count for key in the current window and
// reports the new value.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Decision is the limiter verdict for one request.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetIn   time.Duration
}

// Limiter allows up to limit hits per client per window.
type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	now     func() time.Time
}

// New builds a Limiter. A non-positive limit disables limiting.
func New(counter Counter, limit int, window time.Duration) *Limiter {
	return &Limiter{counter: counter, limit: limit, window: window, now: time.Now}
}

// Allow records a hit for client and decides whether it may proceed.
// Counter errors are returned alongside an allowing decision so callers
// can fail open.
func (l *Limiter) Allow(ctx context.Context, client string) (Decision, error) {
	if l.limit <= 0 {
		return Decision{Allowed: true}, nil
	}
	now := l.now()
	bucket := now.Truncate(l.window)
	key := fmt.Sprintf("%s%s:%d", keyPrefix, client, bucket.Unix())
	resetIn := bucket.Add(l.window).Sub(now)

	hits, err := l.counter.Incr(ctx, key, l.window)
	if err != nil {
		return Decision{Allowed: true, Remaining: l.limit, ResetIn: resetIn}, fmt.Errorf("rate limit incr: %w", err)
	}
	remaining := l.limit - int(hits)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   hits <= int64(l.limit),
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}

// Limit reports the configured hits per window.
func (l *Limiter) Limit() int {
	return l.limit
}

// RedisCounter is the Counter used in production.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter counts hits in Redis using client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Incr bumps key and sets its expiry in one MULTI/EXEC round-trip.
func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
