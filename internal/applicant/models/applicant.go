package models

import (
	"strings"
	"time"

	id "shoptrack/pkg/domain"
	dErrors "shoptrack/pkg/domain-errors"
)

// Applicant is one application in a shop's hiring pipeline.
//
// Invariants:
//   - ShopID is set at creation and never changes; it is the sole
//     tenant-scoping key for every subsequent read and write
//   - FullName, Email, Phone, PositionApplied are non-empty
//   - Status is always a member of the configured enumeration
//   - FormData and InternalData are never nil
type Applicant struct {
	ID              id.ApplicantID `json:"id"`
	ShopID          id.ShopID      `json:"shop_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	FullName        string         `json:"full_name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	PositionApplied string         `json:"position_applied"`
	Status          string         `json:"status"`
	Source          string         `json:"source,omitempty"`
	FormData        map[string]any `json:"form_data"`
	InternalData    map[string]any `json:"internal_data"`
}

// Summary is the abbreviated projection returned by List. It omits the
// open data maps.
type Summary struct {
	ID              id.ApplicantID `json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	FullName        string         `json:"full_name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	PositionApplied string         `json:"position_applied"`
	Status          string         `json:"status"`
	Source          string         `json:"source,omitempty"`
}

func (a *Applicant) Summary() *Summary {
	return &Summary{
		ID:              a.ID,
		CreatedAt:       a.CreatedAt,
		FullName:        a.FullName,
		Email:           a.Email,
		Phone:           a.Phone,
		PositionApplied: a.PositionApplied,
		Status:          a.Status,
		Source:          a.Source,
	}
}

// NewApplicant constructs a fresh applicant in the initial status.
func NewApplicant(applicantID id.ApplicantID, shopID id.ShopID, fullName, email, phone, position, source, initialStatus string, formData map[string]any, now time.Time) (*Applicant, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	position = strings.TrimSpace(position)

	switch {
	case shopID.IsNil():
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "shop_id is required")
	case fullName == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "full_name is required")
	case email == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email is required")
	case phone == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "phone is required")
	case position == "":
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "position_applied is required")
	}

	if formData == nil {
		formData = map[string]any{}
	}
	return &Applicant{
		ID:              applicantID,
		ShopID:          shopID,
		CreatedAt:       now,
		UpdatedAt:       now,
		FullName:        fullName,
		Email:           email,
		Phone:           phone,
		PositionApplied: position,
		Status:          initialStatus,
		Source:          strings.TrimSpace(source),
		FormData:        formData,
		InternalData:    map[string]any{},
	}, nil
}

// Update carries a partial mutation. Nil means "not supplied": absent
// fields never overwrite stored data, and the data maps are shallow-
// merged key by key rather than replaced.
type Update struct {
	FullName        *string
	Email           *string
	Phone           *string
	PositionApplied *string
	Status          *string
	Source          *string
	FormData        map[string]any
	InternalData    map[string]any
}

// Empty reports whether the update touches nothing.
func (u Update) Empty() bool {
	return u.FullName == nil && u.Email == nil && u.Phone == nil &&
		u.PositionApplied == nil && u.Status == nil && u.Source == nil &&
		u.FormData == nil && u.InternalData == nil
}

// Apply mutates the applicant in place and reports whether the status
// changed, returning the previous status for the audit note.
func (a *Applicant) Apply(u Update, now time.Time) (statusChanged bool, oldStatus string) {
	oldStatus = a.Status

	if u.FullName != nil {
		a.FullName = *u.FullName
	}
	if u.Email != nil {
		a.Email = *u.Email
	}
	if u.Phone != nil {
		a.Phone = *u.Phone
	}
	if u.PositionApplied != nil {
		a.PositionApplied = *u.PositionApplied
	}
	if u.Source != nil {
		a.Source = *u.Source
	}
	if u.Status != nil && *u.Status != a.Status {
		a.Status = *u.Status
		statusChanged = true
	}
	for k, v := range u.FormData {
		a.FormData[k] = v
	}
	for k, v := range u.InternalData {
		a.InternalData[k] = v
	}

	a.UpdatedAt = now
	return statusChanged, oldStatus
}

// ListFilter narrows a tenant-scoped listing. Zero values mean "no
// filter".
type ListFilter struct {
	Status   string
	Position string
	Search   string
}
