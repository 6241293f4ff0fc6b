package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the note ledger.
type Metrics struct {
	NotesAppended prometheus.Counter
}

// New creates a Metrics instance with all note module metrics registered.
func New() *Metrics {
	return &Metrics{
		NotesAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoptrack_notes_appended_total",
			Help: "Total number of staff notes appended to applicant trails",
		}),
	}
}

// IncrementAppended records a staff note landing in the ledger.
func (m *Metrics) IncrementAppended() {
	m.NotesAppended.Inc()
}
