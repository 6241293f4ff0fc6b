package store

import (
	"context"
	"sync"

	"shoptrack/internal/shop/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/sentinel"
)

// InMemory keeps shops in maps keyed by id and slug.
type InMemory struct {
	mu     sync.RWMutex
	shops  map[id.ShopID]*models.Shop
	bySlug map[string]id.ShopID
}

func NewInMemory() *InMemory {
	return &InMemory{
		shops:  make(map[id.ShopID]*models.Shop),
		bySlug: make(map[string]id.ShopID),
	}
}

// CreateIfSlugAvailable inserts the shop unless its slug is taken.
func (s *InMemory) CreateIfSlugAvailable(_ context.Context, shop *models.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.bySlug[shop.Slug]; taken {
		return sentinel.ErrAlreadyUsed
	}
	cp := *shop
	s.shops[shop.ID] = &cp
	s.bySlug[shop.Slug] = shop.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, shopID id.ShopID) (*models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shop, ok := s.shops[shopID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *shop
	return &cp, nil
}

func (s *InMemory) FindBySlug(_ context.Context, slug string) (*models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shopID, ok := s.bySlug[slug]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.shops[shopID]
	return &cp, nil
}

func (s *InMemory) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, taken := s.bySlug[slug]
	return taken, nil
}
