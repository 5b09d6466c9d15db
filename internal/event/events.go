// Package event publishes booking lifecycle events to a message broker.
// Consumers (notifications, analytics) get enough payload to act without
// querying the primary database.
package event

import "time"

// Routing keys follow <domain>.<action>, e.g. "pool.created",
// "hotel.status_changed".
const (
	ActionCreated         = "created"
	ActionStatusChanged   = "status_changed"
	ActionPaymentRecorded = "payment_recorded"
)

// BookingEvent is the JSON payload published for every booking mutation.
type BookingEvent struct {
	Domain        string    `json:"domain"`
	Action        string    `json:"action"`
	BookingRef    string    `json:"booking_ref"`
	SubjectID     string    `json:"subject_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	AmountCents   int64     `json:"amount_cents,omitempty"`
	ActorID       string    `json:"actor_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
