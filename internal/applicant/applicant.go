// Package applicant owns the hiring-pipeline core: applicant records,
// their tenant-scoped access rules, and the status-change audit hook.
//
// Tenant scoping is a capability, not a convention: the store exposes
// reads and writes only through ForShop, so a query that forgets the
// tenant filter cannot be expressed.
package applicant

import (
	"context"

	"shoptrack/internal/applicant/models"
	id "shoptrack/pkg/domain"
)

// Scoped is the view of applicant persistence bound to one tenant.
// Every operation behaves as if rows of other shops did not exist.
type Scoped interface {
	List(ctx context.Context, filter models.ListFilter) ([]models.Summary, error)
	Get(ctx context.Context, applicantID id.ApplicantID) (*models.Applicant, error)
	// Update persists the already-merged applicant. The patch carries
	// the raw supplied maps so SQL backends can merge key-by-key in
	// place. Returns sentinel.ErrNotFound if the row is absent or
	// belongs to another tenant.
	Update(ctx context.Context, applicant *models.Applicant, patch models.Update) error
	Delete(ctx context.Context, applicantID id.ApplicantID) error
}

// Store abstracts applicant persistence. Create is unscoped because
// intake runs before any tenant is resolved; everything else goes
// through ForShop.
type Store interface {
	Create(ctx context.Context, applicant *models.Applicant) error
	ForShop(shopID id.ShopID) Scoped
}
