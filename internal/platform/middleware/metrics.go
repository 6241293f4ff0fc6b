package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shoptrack/internal/platform/metrics"
)

// Metrics records request latency labeled by the matched chi route
// pattern, so path parameters do not explode the label space.
func Metrics(m *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.ObserveRequest(r.Method, route, sw.status, start)
		})
	}
}
