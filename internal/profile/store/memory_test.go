package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"shoptrack/internal/profile/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/sentinel"
)

type ProfileStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *ProfileStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestProfileStoreSuite(t *testing.T) {
	suite.Run(t, new(ProfileStoreSuite))
}

func (s *ProfileStoreSuite) newProfile(email string) *models.Profile {
	return &models.Profile{
		ID:        id.UserID(uuid.New()),
		Email:     email,
		FullName:  "Test User",
		CreatedAt: time.Now(),
	}
}

func (s *ProfileStoreSuite) TestUpsertAndFind() {
	s.Run("creates and finds profile", func() {
		p := s.newProfile("owner@shop.test")
		s.Require().NoError(s.store.Upsert(s.ctx, p))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(p.Email, found.Email)
		s.False(found.HasShop())
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.UserID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *ProfileStoreSuite) TestBindShop() {
	s.Run("binds once", func() {
		p := s.newProfile("owner@shop.test")
		s.Require().NoError(s.store.Upsert(s.ctx, p))

		shopID := id.NewShopID()
		s.Require().NoError(s.store.BindShop(s.ctx, p.ID, shopID))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Require().True(found.HasShop())
		s.Equal(shopID, *found.ShopID)
	})

	s.Run("rejects a second bind", func() {
		p := s.newProfile("owner2@shop.test")
		s.Require().NoError(s.store.Upsert(s.ctx, p))
		s.Require().NoError(s.store.BindShop(s.ctx, p.ID, id.NewShopID()))

		err := s.store.BindShop(s.ctx, p.ID, id.NewShopID())
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("returns ErrNotFound for missing profile", func() {
		err := s.store.BindShop(s.ctx, id.UserID(uuid.New()), id.NewShopID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}
