package models

import (
	"time"

	id "shoptrack/pkg/domain"
)

// Profile extends the identity provider's user record with the tenant
// binding. ShopID is set exactly once, on shop creation, and never
// reassigned.
type Profile struct {
	ID        id.UserID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	ShopID    *id.ShopID `json:"shop_id"`
	CreatedAt time.Time  `json:"created_at"`
}

func (p *Profile) HasShop() bool {
	return p.ShopID != nil && !p.ShopID.IsNil()
}
