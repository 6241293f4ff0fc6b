package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shoptrack/internal/applicant/models"
	"shoptrack/internal/applicant/service"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/httputil"
	"shoptrack/pkg/requestcontext"
)

// Service defines the interface for applicant lifecycle operations.
type Service interface {
	Submit(ctx context.Context, req service.SubmitRequest) (*models.Applicant, error)
	List(ctx context.Context, filter models.ListFilter) ([]models.Summary, error)
	Get(ctx context.Context, applicantID id.ApplicantID) (*models.Applicant, error)
	Update(ctx context.Context, applicantID id.ApplicantID, patch models.Update) (*models.Applicant, error)
	Delete(ctx context.Context, applicantID id.ApplicantID) error
}

// Handler wires applicant endpoints to the lifecycle service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an applicant handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated intake endpoint.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/applicants", h.HandleSubmit)
}

// RegisterProtected mounts the staff triage endpoints.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/applicants", h.HandleList)
	r.Get("/applicants/{id}", h.HandleGet)
	r.Patch("/applicants/{id}", h.HandleUpdate)
	r.Delete("/applicants/{id}", h.HandleDelete)
}

// HandleSubmit handles POST /api/applicants requests from the public
// apply form.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	applicant, err := h.service.Submit(ctx, req.ToSubmit())
	if err != nil {
		h.logger.WarnContext(ctx, "intake submission rejected",
			"request_id", requestID,
			"shop_id", req.ShopID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, applicant)
}

// HandleList handles GET /api/applicants requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := models.ListFilter{
		Status:   r.URL.Query().Get("status"),
		Position: r.URL.Query().Get("position"),
		Search:   r.URL.Query().Get("search"),
	}

	out, err := h.service.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /api/applicants/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	applicantID, err := id.ParseApplicantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	applicant, err := h.service.Get(r.Context(), applicantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, applicant)
}

// HandleUpdate handles PATCH /api/applicants/{id} requests.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	applicantID, err := id.ParseApplicantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	applicant, err := h.service.Update(ctx, applicantID, req.ToUpdate())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, applicant)
}

// HandleDelete handles DELETE /api/applicants/{id} requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	applicantID, err := id.ParseApplicantID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), applicantID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
