// Package notify implements the notification dispatcher boundary: committed
// reservations and due reminders are handed off here, and delivery fan-out
// (calendar, email, SMS) happens downstream with its own error handling.
// Nothing in this package can fail a committed booking.
package notify

import (
	"context"
	"log/slog"

	"studio-booking/internal/usecase/commands"
)

// LogDispatcher is the fallback when no broker is configured: events are
// structured-logged and dropped.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Publish(_ context.Context, event commands.ReservationEvent) error {
	d.logger.Info("reservation event",
		"kind", event.Kind,
		"reservation_id", event.ReservationID,
		"studio", event.Studio,
		"date", event.Date,
		"start", event.Start,
		"end", event.End,
		"status", event.Status,
	)
	return nil
}

func (d *LogDispatcher) PublishReminder(_ context.Context, event ReminderDueEvent) error {
	d.logger.Info("reminder due",
		"reminder_id", event.ReminderID,
		"reservation_id", event.ReservationID,
		"kind", event.Kind,
		"fire_at", event.FireAt,
	)
	return nil
}
