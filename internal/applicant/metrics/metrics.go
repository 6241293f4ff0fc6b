package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the applicant module.
type Metrics struct {
	ApplicantsCreated prometheus.Counter
	ApplicantsDeleted prometheus.Counter
	StatusTransitions *prometheus.CounterVec
	IntakeNoteFailed  prometheus.Counter
	SubmitDuration    prometheus.Histogram
	UpdateDuration    prometheus.Histogram
}

// New creates a Metrics instance with all applicant module metrics registered.
func New() *Metrics {
	return &Metrics{
		ApplicantsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoptrack_applicants_created_total",
			Help: "Total number of applicants created through intake",
		}),
		ApplicantsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoptrack_applicants_deleted_total",
			Help: "Total number of applicants hard-deleted",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "shoptrack_status_transitions_total",
			Help: "Status transitions by target status",
		}, []string{"to"}),
		IntakeNoteFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shoptrack_intake_note_failures_total",
			Help: "Intake system notes that failed to append (non-fatal)",
		}),
		SubmitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shoptrack_submit_duration_seconds",
			Help:    "Duration of public intake submissions",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		UpdateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shoptrack_update_duration_seconds",
			Help:    "Duration of applicant updates (status path included)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCreated records a successful intake.
func (m *Metrics) IncrementCreated() {
	m.ApplicantsCreated.Inc()
}

// IncrementDeleted records a hard delete.
func (m *Metrics) IncrementDeleted() {
	m.ApplicantsDeleted.Inc()
}

// IncrementTransition records a status change's target status.
func (m *Metrics) IncrementTransition(to string) {
	m.StatusTransitions.WithLabelValues(to).Inc()
}

// IncrementIntakeNoteFailure records a dropped intake note.
func (m *Metrics) IncrementIntakeNoteFailure() {
	m.IntakeNoteFailed.Inc()
}

// ObserveSubmit records the duration of a Submit operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSubmit(start time.Time) {
	m.SubmitDuration.Observe(time.Since(start).Seconds())
}

// ObserveUpdate records the duration of an Update operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveUpdate(start time.Time) {
	m.UpdateDuration.Observe(time.Since(start).Seconds())
}
