package booking

import (
	"time"

	"github.com/google/uuid"
)

type ReminderKind string

const (
	ReminderConfirmation ReminderKind = "confirmation"
	Reminder24hBefore    ReminderKind = "24h_before"
	Reminder1hBefore     ReminderKind = "1h_before"
)

type ReminderStatus string

const (
	ReminderPending   ReminderStatus = "pending"
	ReminderSent      ReminderStatus = "sent"
	ReminderCancelled ReminderStatus = "cancelled"
)

// Reminder is a derived notification task anchored to a reservation start.
// Delivery is the dispatcher's concern; the engine only derives and stores
// these rows.
type Reminder struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	Kind          ReminderKind
	FireAt        time.Time
	Status        ReminderStatus
}

// ScheduleReminders derives the full three-record batch for a freshly
// committed reservation. A fire time already in the past is still recorded;
// whether a past-due pending reminder fires is dispatcher policy.
func ScheduleReminders(reservationID uuid.UUID, startAt, now time.Time) []Reminder {
	return []Reminder{
		{
			ID:            uuid.New(),
			ReservationID: reservationID,
			Kind:          ReminderConfirmation,
			FireAt:        now,
			Status:        ReminderSent,
		},
		{
			ID:            uuid.New(),
			ReservationID: reservationID,
			Kind:          Reminder24hBefore,
			FireAt:        startAt.Add(-24 * time.Hour),
			Status:        ReminderPending,
		},
		{
			ID:            uuid.New(),
			ReservationID: reservationID,
			Kind:          Reminder1hBefore,
			FireAt:        startAt.Add(-1 * time.Hour),
			Status:        ReminderPending,
		},
	}
}

// RescheduleReminders derives the replacement pair after a time change. The
// confirmation record is never recreated.
func RescheduleReminders(reservationID uuid.UUID, startAt time.Time) []Reminder {
	return []Reminder{
		{
			ID:            uuid.New(),
			ReservationID: reservationID,
			Kind:          Reminder24hBefore,
			FireAt:        startAt.Add(-24 * time.Hour),
			Status:        ReminderPending,
		},
		{
			ID:            uuid.New(),
			ReservationID: reservationID,
			Kind:          Reminder1hBefore,
			FireAt:        startAt.Add(-1 * time.Hour),
			Status:        ReminderPending,
		},
	}
}
