package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shoptrack/internal/note/models"
	"shoptrack/internal/note/service"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/httputil"
	"shoptrack/pkg/requestcontext"
)

// Service defines the interface for ledger operations.
type Service interface {
	List(ctx context.Context, applicantID id.ApplicantID) ([]models.Note, error)
	Append(ctx context.Context, applicantID id.ApplicantID, req service.AppendRequest) (*models.Note, error)
}

// Handler wires the per-applicant note endpoints to the ledger service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a note handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterProtected mounts the staff ledger endpoints.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/applicants/{id}/notes", h.HandleList)
	r.Post("/applicants/{id}/notes", h.HandleAppend)
}

// HandleList handles GET /api/applicants/{id}/notes requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	applicantID, err := id.ParseApplicantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	notes, err := h.service.List(r.Context(), applicantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, notes)
}

// HandleAppend handles POST /api/applicants/{id}/notes requests.
func (h *Handler) HandleAppend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	applicantID, err := id.ParseApplicantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[AppendNoteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	note, err := h.service.Append(ctx, applicantID, req.ToAppend())
	if err != nil {
		h.logger.WarnContext(ctx, "note append rejected",
			"request_id", requestID,
			"applicant_id", applicantID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, note)
}
