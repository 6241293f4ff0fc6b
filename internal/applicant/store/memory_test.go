package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"shoptrack/internal/applicant/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/sentinel"
)

type ApplicantStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
	shop  id.ShopID
	other id.ShopID
}

func (s *ApplicantStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
	s.shop = id.NewShopID()
	s.other = id.NewShopID()
}

func TestApplicantStoreSuite(t *testing.T) {
	suite.Run(t, new(ApplicantStoreSuite))
}

func (s *ApplicantStoreSuite) create(shopID id.ShopID, name string, at time.Time) *models.Applicant {
	a, err := models.NewApplicant(
		id.NewApplicantID(), shopID,
		name, name+"@x.com", "555", "Lube Technician", "",
		"NEW", nil, at,
	)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Create(s.ctx, a))
	return a
}

func (s *ApplicantStoreSuite) TestTenantScoping() {
	mine := s.create(s.shop, "Jane", time.Now())
	theirs := s.create(s.other, "John", time.Now())

	s.Run("get in scope succeeds", func() {
		found, err := s.store.ForShop(s.shop).Get(s.ctx, mine.ID)
		s.Require().NoError(err)
		s.Equal(mine.FullName, found.FullName)
	})

	s.Run("cross-tenant get looks absent", func() {
		_, err := s.store.ForShop(s.shop).Get(s.ctx, theirs.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("cross-tenant update looks absent", func() {
		err := s.store.ForShop(s.shop).Update(s.ctx, theirs, models.Update{})
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("cross-tenant delete looks absent", func() {
		err := s.store.ForShop(s.shop).Delete(s.ctx, theirs.ID)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("list only returns the tenant's rows", func() {
		out, err := s.store.ForShop(s.shop).List(s.ctx, models.ListFilter{})
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal(mine.ID, out[0].ID)
	})
}

func (s *ApplicantStoreSuite) TestListOrderingAndFilters() {
	base := time.Now()
	oldest := s.create(s.shop, "Alice", base)
	middle := s.create(s.shop, "Bob", base.Add(time.Minute))
	newest := s.create(s.shop, "Carol", base.Add(2*time.Minute))

	s.Run("orders newest first", func() {
		out, err := s.store.ForShop(s.shop).List(s.ctx, models.ListFilter{})
		s.Require().NoError(err)
		s.Require().Len(out, 3)
		s.Equal(newest.ID, out[0].ID)
		s.Equal(middle.ID, out[1].ID)
		s.Equal(oldest.ID, out[2].ID)
	})

	s.Run("filters by status", func() {
		hired := "HIRED"
		middle.Apply(models.Update{Status: &hired}, time.Now())
		s.Require().NoError(s.store.ForShop(s.shop).Update(s.ctx, middle, models.Update{}))

		out, err := s.store.ForShop(s.shop).List(s.ctx, models.ListFilter{Status: "HIRED"})
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal(middle.ID, out[0].ID)
	})

	s.Run("filters by position exact match", func() {
		out, err := s.store.ForShop(s.shop).List(s.ctx, models.ListFilter{Position: "Lube Technician"})
		s.Require().NoError(err)
		s.Len(out, 3)

		out, err = s.store.ForShop(s.shop).List(s.ctx, models.ListFilter{Position: "Lube"})
		s.Require().NoError(err)
		s.Empty(out)
	})

	s.Run("search is case-insensitive OR across name email phone", func() {
		out, err := s.store.ForShop(s.shop).List(s.ctx, models.ListFilter{Search: "ALICE"})
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal(oldest.ID, out[0].ID)

		out, err = s.store.ForShop(s.shop).List(s.ctx, models.ListFilter{Search: "bob@x.com"})
		s.Require().NoError(err)
		s.Require().Len(out, 1)
		s.Equal(middle.ID, out[0].ID)

		out, err = s.store.ForShop(s.shop).List(s.ctx, models.ListFilter{Search: "555"})
		s.Require().NoError(err)
		s.Len(out, 3)
	})

	s.Run("summaries omit the data maps", func() {
		out, err := s.store.ForShop(s.shop).List(s.ctx, models.ListFilter{})
		s.Require().NoError(err)
		// Summary carries only the triage columns; compile-time shape check.
		s.NotEmpty(out[0].FullName)
	})
}

func (s *ApplicantStoreSuite) TestUpdatePersists() {
	a := s.create(s.shop, "Jane", time.Now())
	phone := "777"
	a.Apply(models.Update{Phone: &phone, FormData: map[string]any{"k": "v"}}, time.Now())

	s.Require().NoError(s.store.ForShop(s.shop).Update(s.ctx, a, models.Update{FormData: map[string]any{"k": "v"}}))

	found, err := s.store.ForShop(s.shop).Get(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal("777", found.Phone)
	s.Equal("v", found.FormData["k"])
}

func (s *ApplicantStoreSuite) TestDelete() {
	a := s.create(s.shop, "Jane", time.Now())

	s.Require().NoError(s.store.ForShop(s.shop).Delete(s.ctx, a.ID))

	_, err := s.store.ForShop(s.shop).Get(s.ctx, a.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
