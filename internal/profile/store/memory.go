package store

import (
	"context"
	"sync"

	"shoptrack/internal/profile/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/sentinel"
)

// InMemory keeps profiles in a map. Used in tests and when no database
// is configured.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[id.UserID]*models.Profile
}

func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[id.UserID]*models.Profile)}
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemory) Upsert(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *profile
	s.profiles[profile.ID] = &cp
	return nil
}

func (s *InMemory) BindShop(_ context.Context, userID id.UserID, shopID id.ShopID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if p.ShopID != nil && !p.ShopID.IsNil() {
		return sentinel.ErrConflict
	}
	bound := shopID
	p.ShopID = &bound
	return nil
}
