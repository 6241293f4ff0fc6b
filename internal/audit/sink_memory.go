package audit

import (
	"context"
	"sync"

	id "shoptrack/pkg/domain"
)

// MemorySink collects events in memory. Used when no brokers are
// configured, and by tests.
type MemorySink struct {
	mu     sync.RWMutex
	events map[id.ShopID][]Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{events: make(map[id.ShopID][]Event)}
}

func (s *MemorySink) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ShopID] = append(s.events[event.ShopID], event)
	return nil
}

// ListByShop returns the recorded events for one tenant.
func (s *MemorySink) ListByShop(_ context.Context, shopID id.ShopID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[shopID]...), nil
}

func (s *MemorySink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.ShopID][]Event)
}
