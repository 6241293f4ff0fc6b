// Package server assembles the HTTP surface: middleware chains, the
// public intake group, and the authenticated staff group.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applicanthandler "shoptrack/internal/applicant/handler"
	"shoptrack/internal/constants"
	notehandler "shoptrack/internal/note/handler"
	platformmetrics "shoptrack/internal/platform/metrics"
	"shoptrack/internal/platform/middleware"
	"shoptrack/internal/ratelimit"
	shophandler "shoptrack/internal/shop/handler"
	"shoptrack/internal/upload"
	"shoptrack/pkg/platform/httputil"
)

// HealthCheck probes one dependency. Nil-valued entries are skipped so
// optional backends (Redis, Kafka) don't fail health when unconfigured.
type HealthCheck func(ctx context.Context) error

// Dependencies carries everything the router mounts. Optional fields
// may be nil; the corresponding surface is simply not mounted.
type Dependencies struct {
	Logger     *slog.Logger
	Metrics    *platformmetrics.HTTP
	JWT        middleware.JWTValidator
	Limiter    *ratelimit.Limiter
	Applicants *applicanthandler.Handler
	Notes      *notehandler.Handler
	Shops      *shophandler.Handler
	Constants  *constants.Handler
	Uploads    *upload.Handler
	Health     map[string]HealthCheck
}

// New builds the full router.
func New(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", handleRoot)
	r.Get("/api/health", handleHealth(deps.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		// Public surface: the intake form, shop lookups for the apply
		// page, and the catalog that keeps client forms in sync.
		api.Group(func(public chi.Router) {
			public.Use(middleware.ContentTypeJSON)
			public.Use(middleware.ClientMetadata)
			if deps.Limiter != nil {
				public.Use(deps.Limiter.Middleware)
			}
			deps.Applicants.RegisterPublic(public)
			deps.Shops.RegisterPublic(public)
			deps.Constants.Register(public)
			if deps.Uploads != nil {
				deps.Uploads.RegisterPublic(public)
			}
		})

		// Staff surface: everything behind bearer auth.
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.ContentTypeJSON)
			protected.Use(middleware.RequireAuth(deps.JWT, deps.Logger))
			deps.Applicants.RegisterProtected(protected)
			deps.Notes.RegisterProtected(protected)
			deps.Shops.RegisterProtected(protected)
		})
	})

	return r
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "shoptrack",
		"status":  "ok",
	})
}

// handleHealth runs each registered probe and reports per-dependency
// status. Any failing probe degrades the response to 503.
func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		report := map[string]string{"status": "ok"}
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				report[name] = err.Error()
				report["status"] = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			report[name] = "ok"
		}
		httputil.WriteJSON(w, status, report)
	}
}
