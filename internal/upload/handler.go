package upload

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dErrors "shoptrack/pkg/domain-errors"
	"shoptrack/pkg/platform/httputil"
	"shoptrack/pkg/requestcontext"
)

// SignRequest is the POST /api/upload/resume body.
type SignRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

func (r *SignRequest) Validate() error {
	r.FileName = strings.TrimSpace(r.FileName)
	r.ContentType = strings.TrimSpace(r.ContentType)
	if r.FileName == "" {
		return dErrors.New(dErrors.CodeValidation, "file_name is required")
	}
	if r.ContentType == "" {
		r.ContentType = "application/pdf"
	}
	return nil
}

// Handler wires the upload endpoint to the signing service.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler constructs an upload handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the upload endpoint used by the apply form.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Post("/upload/resume", h.HandleSign)
}

// HandleSign handles POST /api/upload/resume requests.
func (h *Handler) HandleSign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SignRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	signed, err := h.service.Sign(req.FileName, req.ContentType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "upload URL minted",
		"request_id", requestID,
		"file_name", signed.FileName,
	)
	httputil.WriteJSON(w, http.StatusOK, signed)
}
