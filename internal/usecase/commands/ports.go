package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventReservationCreated   EventKind = "reservation_created"
	EventReservationModified  EventKind = "reservation_modified"
	EventReservationCancelled EventKind = "reservation_cancelled"
)

// ReservationEvent is the post-commit value handed to the notification
// dispatcher. The engine's responsibility ends at publishing it; calendar
// sync, email and SMS fan-out happen downstream with their own error
// handling.
type ReservationEvent struct {
	Kind          EventKind `json:"kind"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Studio        string    `json:"studio"`
	Date          string    `json:"date"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	Status        string    `json:"status"`
	Phone         string    `json:"phone"`
	Name          *string   `json:"name,omitempty"`
	Email         *string   `json:"email,omitempty"`
	TotalAmount   *int64    `json:"total_amount,omitempty"`
	Reason        *string   `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// EventPublisher delivers post-commit events best-effort. Failures are logged
// by implementations and never surface as booking failures.
type EventPublisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}
