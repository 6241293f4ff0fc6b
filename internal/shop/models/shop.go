package models

import (
	"strings"
	"time"

	id "shoptrack/pkg/domain"
	dErrors "shoptrack/pkg/domain-errors"
)

// Shop is the tenant aggregate. Created once at signup; immutable
// afterwards except Settings.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - Slug is non-empty, unique, URL-safe
//   - CreatedAt is immutable after construction
type Shop struct {
	ID        id.ShopID      `json:"id"`
	Name      string         `json:"name"`
	Slug      string         `json:"slug"`
	Settings  map[string]any `json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
}

// PublicShop is the projection exposed on unauthenticated lookups.
// Settings must never leak through these endpoints.
type PublicShop struct {
	ID   id.ShopID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

func (s *Shop) Public() *PublicShop {
	return &PublicShop{ID: s.ID, Name: s.Name, Slug: s.Slug}
}

func NewShop(shopID id.ShopID, name, slug string, now time.Time) (*Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "shop name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "shop name must be 128 characters or less")
	}
	if slug == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "shop slug cannot be empty")
	}
	return &Shop{
		ID:        shopID,
		Name:      name,
		Slug:      slug,
		Settings:  map[string]any{},
		CreatedAt: now,
	}, nil
}
