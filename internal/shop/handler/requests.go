package handler

import (
	"strings"

	dErrors "shoptrack/pkg/domain-errors"
)

// CreateShopRequest is the POST /api/shops body.
type CreateShopRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

func (r *CreateShopRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.TrimSpace(r.Slug)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}
