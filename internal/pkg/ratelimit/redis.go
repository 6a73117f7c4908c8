package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptKeyPrefix = "login_attempts:"

// RedisAttemptCounter shares attempt counts between processes. Each hit refreshes the
// key expiry, so a count disappears after window without attempts.
type RedisAttemptCounter struct {
	client redis.Cmdable
	window time.Duration
}

// NewRedisAttemptCounter creates a Redis backed AttemptCounter.
func NewRedisAttemptCounter(client redis.Cmdable, window time.Duration) *RedisAttemptCounter {
	if window <= 0 {
		window = LoginWindow
	}
	return &RedisAttemptCounter{client: client, window: window}
}

// Hit implements AttemptCounter. The increment and the expiry are applied in one
// MULTI/EXEC block, so a counted key always carries a TTL.
func (c *RedisAttemptCounter) Hit(ctx context.Context, key string) (int64, error) {
	k := attemptKey(key)
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, c.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count login attempts: %w", err)
	}
	return incr.Val(), nil
}

func attemptKey(key string) string {
	return attemptKeyPrefix + key
}
