package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shoptrack/internal/shop/models"
	id "shoptrack/pkg/domain"
	"shoptrack/pkg/platform/httputil"
	"shoptrack/pkg/requestcontext"
)

// Service defines the interface for shop directory operations.
type Service interface {
	CreateShop(ctx context.Context, name, slug string) (*models.Shop, error)
	GetBySlug(ctx context.Context, slug string) (*models.PublicShop, error)
	GetByID(ctx context.Context, shopID id.ShopID) (*models.PublicShop, error)
	GetMine(ctx context.Context) (*models.Shop, error)
}

// Handler wires shop endpoints to the directory service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a shop handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterPublic mounts the unauthenticated lookup endpoints.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/shops/by-slug/{slug}", h.HandleGetBySlug)
	r.Get("/shops/by-id/{id}", h.HandleGetByID)
}

// RegisterProtected mounts the endpoints requiring a bearer token.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/shops", h.HandleCreate)
	r.Get("/shops/mine", h.HandleGetMine)
}

// HandleCreate handles POST /api/shops requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateShopRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	shop, err := h.service.CreateShop(ctx, req.Name, req.Slug)
	if err != nil {
		h.logger.ErrorContext(ctx, "shop creation failed",
			"request_id", requestID,
			"name", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, shop)
}

// HandleGetBySlug handles GET /api/shops/by-slug/{slug} requests.
func (h *Handler) HandleGetBySlug(w http.ResponseWriter, r *http.Request) {
	shop, err := h.service.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, shop)
}

// HandleGetByID handles GET /api/shops/by-id/{id} requests.
func (h *Handler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	shopID, err := id.ParseShopID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	shop, err := h.service.GetByID(r.Context(), shopID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, shop)
}

// HandleGetMine handles GET /api/shops/mine requests.
func (h *Handler) HandleGetMine(w http.ResponseWriter, r *http.Request) {
	shop, err := h.service.GetMine(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, shop)
}
