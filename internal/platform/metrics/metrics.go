// Package metrics holds process-wide HTTP metrics shared by every
// route, as opposed to the per-module metrics packages.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP provides request-level observability across the router.
type HTTP struct {
	RequestDuration *prometheus.HistogramVec
}

// NewHTTP creates the shared HTTP metrics.
func NewHTTP() *HTTP {
	return &HTTP{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shoptrack_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route pattern and status",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// ObserveRequest records one request.
func (m *HTTP) ObserveRequest(method, route string, status int, start time.Time) {
	m.RequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).
		Observe(time.Since(start).Seconds())
}
