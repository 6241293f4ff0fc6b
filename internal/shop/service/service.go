package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shoptrack/internal/audit"
	profilemodels "shoptrack/internal/profile/models"
	shopmetrics "shoptrack/internal/shop/metrics"
	"shoptrack/internal/shop/models"
	id "shoptrack/pkg/domain"
	dErrors "shoptrack/pkg/domain-errors"
	"shoptrack/pkg/platform/sentinel"
	"shoptrack/pkg/requestcontext"
)

// ShopStore abstracts shop persistence.
type ShopStore interface {
	CreateIfSlugAvailable(ctx context.Context, shop *models.Shop) error
	FindByID(ctx context.Context, shopID id.ShopID) (*models.Shop, error)
	FindBySlug(ctx context.Context, slug string) (*models.Shop, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// ProfileStore is the slice of profile persistence the directory needs:
// the already-has-shop check and the final bind.
type ProfileStore interface {
	FindByID(ctx context.Context, userID id.UserID) (*profilemodels.Profile, error)
	Upsert(ctx context.Context, profile *profilemodels.Profile) error
	BindShop(ctx context.Context, userID id.UserID, shopID id.ShopID) error
}

// AuditPublisher emits shop lifecycle events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service is the shop directory: tenant provisioning and public lookup.
type Service struct {
	shops    ShopStore
	profiles ProfileStore
	logger   *slog.Logger
	auditor  AuditPublisher
	metrics  *shopmetrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *shopmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(shops ShopStore, profiles ProfileStore, opts ...Option) *Service {
	s := &Service{
		shops:    shops,
		profiles: profiles,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateShop provisions a tenant for the calling user. One shop per
// user: a profile already bound to a shop is rejected. The profile bind
// is the final step so a failed insert never leaves a dangling binding.
func (s *Service) CreateShop(ctx context.Context, name, slug string) (*models.Shop, error) {
	start := time.Now()
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	profile, err := s.loadOrSeedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.HasShop() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "User already has a shop")
	}

	if slug == "" {
		slug = models.Slugify(name)
	} else {
		slug = models.Slugify(slug)
	}

	taken, err := s.shops.SlugExists(ctx, slug)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check slug")
	}
	if taken {
		slug = slug + "-" + uuid.NewString()[:8]
		if s.metrics != nil {
			s.metrics.IncrementSlugCollision()
		}
	}

	shop, err := models.NewShop(id.NewShopID(), name, slug, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	if err := s.shops.CreateIfSlugAvailable(ctx, shop); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			// Lost a race on the suffixed slug as well; extremely
			// unlikely, surface as a conflict.
			return nil, dErrors.New(dErrors.CodeConflict, "shop slug must be unique")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create shop")
	}

	if err := s.profiles.BindShop(ctx, userID, shop.ID); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "User already has a shop")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to bind shop to profile")
	}

	s.logger.InfoContext(ctx, "shop created",
		"shop_id", shop.ID,
		"slug", shop.Slug,
		"user_id", userID,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Action: audit.ActionShopCreated,
			ShopID: shop.ID,
			Actor:  requestcontext.Email(ctx),
			Detail: shop.Slug,
		})
	}
	if s.metrics != nil {
		s.metrics.IncrementShopCreated()
		s.metrics.ObserveCreateShop(start)
	}
	return shop, nil
}

// loadOrSeedProfile fetches the caller's profile, creating a minimal
// row on first contact. The identity provider owns authentication; the
// profile row only carries the tenant binding.
func (s *Service) loadOrSeedProfile(ctx context.Context, userID id.UserID) (*profilemodels.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}

	profile = &profilemodels.Profile{
		ID:        userID,
		Email:     requestcontext.Email(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create profile")
	}
	return profile, nil
}

// GetBySlug returns the public projection for the apply page.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.PublicShop, error) {
	if slug == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "shop slug is required")
	}
	shop, err := s.shops.FindBySlug(ctx, slug)
	if err != nil {
		return nil, wrapShopErr(err)
	}
	return shop.Public(), nil
}

// GetByID returns the public projection for the apply page.
func (s *Service) GetByID(ctx context.Context, shopID id.ShopID) (*models.PublicShop, error) {
	shop, err := s.shops.FindByID(ctx, shopID)
	if err != nil {
		return nil, wrapShopErr(err)
	}
	return shop.Public(), nil
}

// GetMine returns the caller's full shop record, 404 when the caller
// has no shop bound.
func (s *Service) GetMine(ctx context.Context) (*models.Shop, error) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	profile, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "No shop associated with user")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	if !profile.HasShop() {
		return nil, dErrors.New(dErrors.CodeNotFound, "No shop associated with user")
	}

	shop, err := s.shops.FindByID(ctx, *profile.ShopID)
	if err != nil {
		return nil, wrapShopErr(err)
	}
	return shop, nil
}

func wrapShopErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "Shop not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load shop")
}
