package ratelimit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoptrack/internal/platform/config"
	"shoptrack/pkg/requestcontext"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryCounter(t *testing.T) {
	t.Run("counts within a window", func(t *testing.T) {
		c := NewMemoryCounter()
		for want := int64(1); want <= 3; want++ {
			got, err := c.Hit(context.Background(), "1.2.3.4", time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("keys count independently", func(t *testing.T) {
		c := NewMemoryCounter()
		_, err := c.Hit(context.Background(), "1.2.3.4", time.Minute)
		require.NoError(t, err)

		got, err := c.Hit(context.Background(), "5.6.7.8", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})

	t.Run("a lapsed window restarts the count", func(t *testing.T) {
		c := NewMemoryCounter()
		now := time.Now()
		c.now = func() time.Time { return now }

		_, err := c.Hit(context.Background(), "1.2.3.4", time.Minute)
		require.NoError(t, err)

		c.now = func() time.Time { return now.Add(2 * time.Minute) }
		got, err := c.Hit(context.Background(), "1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	})
}

type erroringCounter struct{}

func (erroringCounter) Hit(context.Context, string, time.Duration) (int64, error) {
	return 0, assert.AnError
}

func TestLimiter(t *testing.T) {
	cfg := config.RateLimitConfig{Limit: 2, Window: time.Minute}

	t.Run("admits up to the limit then rejects", func(t *testing.T) {
		l := New(NewMemoryCounter(), cfg, WithLogger(testLogger()))

		assert.True(t, l.Allow(context.Background(), "1.2.3.4"))
		assert.True(t, l.Allow(context.Background(), "1.2.3.4"))
		assert.False(t, l.Allow(context.Background(), "1.2.3.4"))
	})

	t.Run("fails open when the counter errors", func(t *testing.T) {
		l := New(erroringCounter{}, cfg, WithLogger(testLogger()))

		assert.True(t, l.Allow(context.Background(), "1.2.3.4"))
	})

	t.Run("disabled config admits everything", func(t *testing.T) {
		l := New(NewMemoryCounter(), config.RateLimitConfig{Disabled: true, Limit: 1, Window: time.Minute}, WithLogger(testLogger()))

		for range 10 {
			assert.True(t, l.Allow(context.Background(), "1.2.3.4"))
		}
	})
}

func TestMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("over-limit client gets 429 with Retry-After", func(t *testing.T) {
		l := New(NewMemoryCounter(), config.RateLimitConfig{Limit: 1, Window: time.Minute}, WithLogger(testLogger()))
		wrapped := l.Middleware(handler)

		ctx := requestcontext.WithClientMetadata(context.Background(), "1.2.3.4", "")

		first := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, first)
		assert.Equal(t, http.StatusOK, rec.Code)

		second := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		rec = httptest.NewRecorder()
		wrapped.ServeHTTP(rec, second)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), "rate_limited")
	})

	t.Run("distinct clients do not share a bucket", func(t *testing.T) {
		l := New(NewMemoryCounter(), config.RateLimitConfig{Limit: 1, Window: time.Minute}, WithLogger(testLogger()))
		wrapped := l.Middleware(handler)

		for _, ip := range []string{"1.2.3.4", "5.6.7.8"} {
			ctx := requestcontext.WithClientMetadata(context.Background(), ip, "")
			req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("falls back to the socket address without metadata", func(t *testing.T) {
		l := New(NewMemoryCounter(), config.RateLimitConfig{Limit: 1, Window: time.Minute}, WithLogger(testLogger()))
		wrapped := l.Middleware(handler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "9.9.9.9:1234"
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}
