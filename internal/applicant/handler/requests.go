package handler

import (
	"strings"

	"shoptrack/internal/applicant/models"
	"shoptrack/internal/applicant/service"
	id "shoptrack/pkg/domain"
	dErrors "shoptrack/pkg/domain-errors"
)

// SubmitRequest is the public POST /api/applicants body.
type SubmitRequest struct {
	ShopID          string         `json:"shop_id"`
	FullName        string         `json:"full_name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	PositionApplied string         `json:"position_applied"`
	Source          string         `json:"source,omitempty"`
	FormData        map[string]any `json:"form_data,omitempty"`

	parsedShopID id.ShopID
}

func (r *SubmitRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.PositionApplied = strings.TrimSpace(r.PositionApplied)

	shopID, err := id.ParseShopID(r.ShopID)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "shop_id must be a valid id")
	}
	r.parsedShopID = shopID

	switch {
	case r.FullName == "":
		return dErrors.New(dErrors.CodeValidation, "full_name is required")
	case r.Email == "":
		return dErrors.New(dErrors.CodeValidation, "email is required")
	case r.Phone == "":
		return dErrors.New(dErrors.CodeValidation, "phone is required")
	case r.PositionApplied == "":
		return dErrors.New(dErrors.CodeValidation, "position_applied is required")
	}
	return nil
}

func (r *SubmitRequest) ToSubmit() service.SubmitRequest {
	return service.SubmitRequest{
		ShopID:          r.parsedShopID,
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		PositionApplied: r.PositionApplied,
		Source:          r.Source,
		FormData:        r.FormData,
	}
}

// UpdateRequest is the PATCH /api/applicants/{id} body. Pointer fields
// distinguish "omitted" from "set": only supplied fields are touched.
type UpdateRequest struct {
	FullName        *string        `json:"full_name"`
	Email           *string        `json:"email"`
	Phone           *string        `json:"phone"`
	PositionApplied *string        `json:"position_applied"`
	Status          *string        `json:"status"`
	Source          *string        `json:"source"`
	FormData        map[string]any `json:"form_data"`
	InternalData    map[string]any `json:"internal_data"`
}

func (r *UpdateRequest) Validate() error {
	if r.FullName != nil && strings.TrimSpace(*r.FullName) == "" {
		return dErrors.New(dErrors.CodeValidation, "full_name cannot be empty")
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) == "" {
		return dErrors.New(dErrors.CodeValidation, "email cannot be empty")
	}
	if r.Phone != nil && strings.TrimSpace(*r.Phone) == "" {
		return dErrors.New(dErrors.CodeValidation, "phone cannot be empty")
	}
	if r.PositionApplied != nil && strings.TrimSpace(*r.PositionApplied) == "" {
		return dErrors.New(dErrors.CodeValidation, "position_applied cannot be empty")
	}
	return nil
}

func (r *UpdateRequest) ToUpdate() models.Update {
	return models.Update{
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		PositionApplied: r.PositionApplied,
		Status:          r.Status,
		Source:          r.Source,
		FormData:        r.FormData,
		InternalData:    r.InternalData,
	}
}
