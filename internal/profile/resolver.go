// Package profile resolves authenticated principals to their owning
// shop. Every authorized operation goes through the resolver; nothing
// caches the binding beyond the request.
package profile

import (
	"context"
	"errors"

	"shoptrack/internal/profile/models"
	id "shoptrack/pkg/domain"
	dErrors "shoptrack/pkg/domain-errors"
	"shoptrack/pkg/platform/sentinel"
	"shoptrack/pkg/requestcontext"
)

// Store abstracts profile persistence.
type Store interface {
	FindByID(ctx context.Context, userID id.UserID) (*models.Profile, error)
	Upsert(ctx context.Context, profile *models.Profile) error
	// BindShop sets the profile's shop exactly once. Returns
	// sentinel.ErrConflict when a shop is already bound.
	BindShop(ctx context.Context, userID id.UserID, shopID id.ShopID) error
}

// Resolver maps a verified principal to its tenant.
type Resolver struct {
	profiles Store
}

func NewResolver(profiles Store) *Resolver {
	return &Resolver{profiles: profiles}
}

// Profile loads the caller's profile. Missing profile rows are treated
// the same as an unbound profile: the caller has no tenant yet.
func (r *Resolver) Profile(ctx context.Context) (*models.Profile, error) {
	userID := requestcontext.UserID(ctx)
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	p, err := r.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return &models.Profile{ID: userID, Email: requestcontext.Email(ctx)}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load profile")
	}
	return p, nil
}

// ShopID resolves the caller's tenant, failing with a 400-class error
// when the profile has no shop. This failure is deliberately distinct
// from "shop not found".
func (r *Resolver) ShopID(ctx context.Context) (id.ShopID, error) {
	p, err := r.Profile(ctx)
	if err != nil {
		return id.ShopID{}, err
	}
	if !p.HasShop() {
		return id.ShopID{}, dErrors.New(dErrors.CodeBadRequest, "No shop associated with user")
	}
	return *p.ShopID, nil
}
