// Package audit emits a best-effort event stream of hiring-pipeline
// actions. Events never block or fail the request that produced them.
package audit

import (
	"time"

	id "shoptrack/pkg/domain"
)

// Action names a recorded pipeline event.
type Action string

const (
	ActionApplicantCreated       Action = "applicant_created"
	ActionApplicantStatusChanged Action = "applicant_status_changed"
	ActionApplicantDeleted       Action = "applicant_deleted"
	ActionShopCreated            Action = "shop_created"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp   time.Time      `json:"timestamp"`
	Action      Action         `json:"action"`
	ShopID      id.ShopID      `json:"shop_id"`
	ApplicantID id.ApplicantID `json:"applicant_id,omitempty"`
	Actor       string         `json:"actor,omitempty"`
	Detail      string         `json:"detail,omitempty"`
	RequestID   string         `json:"request_id,omitempty"`
}
