//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoptrack/internal/platform/config"
	"shoptrack/internal/ratelimit"
	"shoptrack/pkg/testutil/containers"
)

func TestRedisCounter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := containers.GetManager().GetRedis(t)
	ctx := context.Background()

	t.Run("counts hits within a window", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := ratelimit.NewRedisCounter(rc.Client)

		for want := int64(1); want <= 3; want++ {
			got, err := c.Hit(ctx, "1.2.3.4", time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("keys count independently", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := ratelimit.NewRedisCounter(rc.Client)

		_, err := c.Hit(ctx, "1.2.3.4", time.Minute)
		require.NoError(t, err)
		got, err := c.Hit(ctx, "5.6.7.8", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})

	t.Run("window expiry restarts the count", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		c := ratelimit.NewRedisCounter(rc.Client)

		_, err := c.Hit(ctx, "1.2.3.4", time.Second)
		require.NoError(t, err)

		time.Sleep(1500 * time.Millisecond)

		got, err := c.Hit(ctx, "1.2.3.4", time.Second)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})

	t.Run("limiter rejects over the shared window", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		l := ratelimit.New(ratelimit.NewRedisCounter(rc.Client),
			config.RateLimitConfig{Limit: 2, Window: time.Minute})

		assert.True(t, l.Allow(ctx, "9.9.9.9"))
		assert.True(t, l.Allow(ctx, "9.9.9.9"))
		assert.False(t, l.Allow(ctx, "9.9.9.9"))
	})
}
