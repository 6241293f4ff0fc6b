// Package domain holds typed identifiers shared across modules.
//
// Every ID is a distinct uuid.UUID wrapper so tenant context can never be
// passed where an applicant or note ID belongs; getting scoping wrong becomes
// a compile error rather than a per-call discipline.
package domain

import (
	"github.com/google/uuid"

	dErrors "shoptrack/pkg/domain-errors"
)

// ShopID identifies a shop (the tenant).
type ShopID uuid.UUID

// UserID identifies a staff user from the external identity provider.
type UserID uuid.UUID

// ApplicantID identifies an applicant record.
type ApplicantID uuid.UUID

// NoteID identifies a ledger note.
type NoteID uuid.UUID

func (id ShopID) String() string      { return uuid.UUID(id).String() }
func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id ApplicantID) String() string { return uuid.UUID(id).String() }
func (id NoteID) String() string      { return uuid.UUID(id).String() }

func (id ShopID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id ApplicantID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id NoteID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

// IDs serialize as canonical UUID strings, not raw byte arrays.
func (id ShopID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id ApplicantID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id NoteID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }

func (id *ShopID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *UserID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ApplicantID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *NoteID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }

// NewShopID generates a fresh shop ID.
func NewShopID() ShopID { return ShopID(uuid.New()) }

// NewApplicantID generates a fresh applicant ID.
func NewApplicantID() ApplicantID { return ApplicantID(uuid.New()) }

// NewNoteID generates a fresh note ID.
func NewNoteID() NoteID { return NoteID(uuid.New()) }

// parseUUID enforces the shared ID invariant: valid, non-empty, non-nil.
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid id format")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be nil")
	}
	return u, nil
}

// ParseShopID validates external input into a ShopID.
// Call at trust boundaries; direct casting bypasses validation.
func ParseShopID(s string) (ShopID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ShopID{}, err
	}
	return ShopID(u), nil
}

// ParseUserID validates external input into a UserID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

// ParseApplicantID validates external input into an ApplicantID.
func ParseApplicantID(s string) (ApplicantID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ApplicantID{}, err
	}
	return ApplicantID(u), nil
}

// ParseNoteID validates external input into a NoteID.
func ParseNoteID(s string) (NoteID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return NoteID{}, err
	}
	return NoteID(u), nil
}
