package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	count   int64
	resetAt time.Time
}

// MemoryCounter is a process-local fixed-window counter. Suitable for
// single-instance deployments and tests; a fleet should share Redis.
type MemoryCounter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewMemoryCounter constructs an empty in-process counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Hit increments the key's window counter, starting a fresh window when
// the previous one has lapsed. Lapsed buckets for other keys are swept
// opportunistically so the map does not grow with one-off clients.
func (c *MemoryCounter) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	b, ok := c.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(window)}
		c.buckets[key] = b
	}
	b.count++

	if len(c.buckets) > 1024 {
		for k, old := range c.buckets {
			if now.After(old.resetAt) {
				delete(c.buckets, k)
			}
		}
	}
	return b.count, nil
}
