// Package ratelimit throttles the unauthenticated public surface by
// client IP. Counting is fixed-window per key; the counter backend is
// pluggable so a single instance can run in memory and a fleet can
// share Redis.
//
// The limiter fails open: if the counter backend errors, the request
// proceeds. An intake form that stops accepting applicants because
// Redis blinked is a worse failure than a short burst over the limit.
package ratelimit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"shoptrack/internal/platform/config"
	"shoptrack/pkg/requestcontext"
)

// Counter counts hits against a key within the current window and
// reports the running total, including this hit.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter throttles requests keyed by client IP.
type Limiter struct {
	counter Counter
	limit   int
	window  time.Duration
	logger  *slog.Logger
}

type Option func(l *Limiter)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}

// New constructs a Limiter from config. A disabled or non-positive
// limit yields a limiter that admits everything.
func New(counter Counter, cfg config.RateLimitConfig, opts ...Option) *Limiter {
	l := &Limiter{
		counter: counter,
		limit:   cfg.Limit,
		window:  cfg.Window,
		logger:  slog.Default(),
	}
	if cfg.Disabled {
		l.limit = 0
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow reports whether the key may proceed.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.limit <= 0 || l.counter == nil {
		return true
	}

	count, err := l.counter.Hit(ctx, key, l.window)
	if err != nil {
		l.logger.WarnContext(ctx, "rate limit counter unavailable, admitting request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return true
	}
	return count <= int64(l.limit)
}

// Middleware rejects over-limit clients with 429. It keys on the
// client IP recorded by the metadata middleware, so it must be mounted
// after it.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		key := requestcontext.ClientIP(ctx)
		if key == "" {
			key = r.RemoteAddr
		}

		if !l.Allow(ctx, key) {
			l.logger.InfoContext(ctx, "rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"client_ip", key,
			)
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limited","error_description":"Too many requests"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
