package models

import (
	"strings"
	"time"

	id "shoptrack/pkg/domain"
	dErrors "shoptrack/pkg/domain-errors"
)

// SystemAuthor is the display name on synthetic ledger entries. System
// notes never carry an author user id.
const SystemAuthor = "System"

// Note is one append-only ledger entry on an applicant. Notes are never
// updated or deleted individually; the whole trail goes away only when
// its applicant is hard-deleted.
type Note struct {
	ID          id.NoteID      `json:"id"`
	ApplicantID id.ApplicantID `json:"applicant_id"`
	CreatedAt   time.Time      `json:"created_at"`
	AddedBy     string         `json:"added_by"`
	AddedByID   *id.UserID     `json:"added_by_id"`
	Message     string         `json:"message"`
}

// NewNote constructs a human-authored ledger entry.
func NewNote(noteID id.NoteID, applicantID id.ApplicantID, addedBy string, addedByID id.UserID, message string, now time.Time) (*Note, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "message is required")
	}
	note := &Note{
		ID:          noteID,
		ApplicantID: applicantID,
		CreatedAt:   now,
		AddedBy:     addedBy,
		Message:     message,
	}
	if !addedByID.IsNil() {
		author := addedByID
		note.AddedByID = &author
	}
	return note, nil
}

// NewSystemNote constructs a synthetic ledger entry with the fixed
// sentinel author and no author id.
func NewSystemNote(noteID id.NoteID, applicantID id.ApplicantID, message string, now time.Time) *Note {
	return &Note{
		ID:          noteID,
		ApplicantID: applicantID,
		CreatedAt:   now,
		AddedBy:     SystemAuthor,
		Message:     message,
	}
}

// StatusChangeMessage is the verbatim wording downstream ledger
// consumers parse. Do not reformat.
func StatusChangeMessage(oldStatus, newStatus string) string {
	return "Status changed from " + oldStatus + " to " + newStatus + "."
}

// IntakeMessage records the submission channel on the first ledger
// entry. The wording is part of the audit contract.
func IntakeMessage(source string) string {
	return "Application submitted via " + source + "."
}
