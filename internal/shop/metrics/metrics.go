package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the shop module.
type Metrics struct {
	ShopCreated        prometheus.Counter
	SlugCollisions     prometheus.Counter
	CreateShopDuration prometheus.Histogram
}

// New creates a Metrics instance with all shop module metrics registered.
func New() *Metrics {
	return &Metrics{
		ShopCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoptrack_shops_created_total",
			Help: "Total number of shops created",
		}),
		SlugCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoptrack_shop_slug_collisions_total",
			Help: "Total number of slug collisions resolved with a random suffix",
		}),
		CreateShopDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shoptrack_create_shop_duration_seconds",
			Help:    "Duration of CreateShop operations (signup path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementShopCreated records a successful shop creation.
func (m *Metrics) IncrementShopCreated() {
	m.ShopCreated.Inc()
}

// IncrementSlugCollision records a slug collision.
func (m *Metrics) IncrementSlugCollision() {
	m.SlugCollisions.Inc()
}

// ObserveCreateShop records the duration of a CreateShop operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCreateShop(start time.Time) {
	m.CreateShopDuration.Observe(time.Since(start).Seconds())
}
