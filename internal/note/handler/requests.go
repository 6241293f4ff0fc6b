package handler

import (
	"strings"

	"shoptrack/internal/note/service"
	dErrors "shoptrack/pkg/domain-errors"
)

// AppendNoteRequest is the POST /api/applicants/{id}/notes body.
type AppendNoteRequest struct {
	Message string `json:"message"`
	AddedBy string `json:"added_by,omitempty"`
}

func (r *AppendNoteRequest) Validate() error {
	r.Message = strings.TrimSpace(r.Message)
	r.AddedBy = strings.TrimSpace(r.AddedBy)
	if r.Message == "" {
		return dErrors.New(dErrors.CodeValidation, "message is required")
	}
	return nil
}

func (r *AppendNoteRequest) ToAppend() service.AppendRequest {
	return service.AppendRequest{
		Message: r.Message,
		AddedBy: r.AddedBy,
	}
}
