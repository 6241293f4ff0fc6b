package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter is a fixed-window counter shared across instances.
// INCR and the initial EXPIRE run in one pipeline round trip; the NX
// variant keeps the window anchored at the first hit.
type RedisCounter struct {
	client redis.Cmdable
	prefix string
}

// NewRedisCounter constructs a counter on an established client.
func NewRedisCounter(client redis.Cmdable) *RedisCounter {
	return &RedisCounter{client: client, prefix: "ratelimit:"}
}

// Hit increments the key's window counter in Redis.
func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.Pipeline()
	incr := pipe.Incr(ctx, c.prefix+key)
	pipe.ExpireNX(ctx, c.prefix+key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
