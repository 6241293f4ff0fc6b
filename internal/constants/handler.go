package constants

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"shoptrack/pkg/platform/httputil"
)

// Handler serves the public catalog endpoint so client forms stay in
// sync with the pipeline definition.
type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// Register mounts the catalog endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/constants", h.HandleGet)
}

// HandleGet handles GET /api/constants requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.catalog)
}
