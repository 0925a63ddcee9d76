package shared

import (
	"time"

	"studio-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// Settings are the tunables that parameterize every validation call. They are
// read fresh per request and injected as a snapshot; the engine never caches
// them.
type Settings struct {
	MinDurationHours   int
	MaxDurationHours   int
	BufferMinutes      int
	AdvanceBookingDays int
	OpeningHour        int
	ClosingHour        int
}

func DefaultSettings() Settings {
	return Settings{
		MinDurationHours:   1,
		MaxDurationHours:   8,
		BufferMinutes:      15,
		AdvanceBookingDays: 30,
		OpeningHour:        9,
		ClosingHour:        21,
	}
}

func (s Settings) OpeningMin() int { return s.OpeningHour * 60 }
func (s Settings) ClosingMin() int { return s.ClosingHour * 60 }

// ReservationSnapshot is the minimal read used by conflict checks.
type ReservationSnapshot struct {
	ID       uuid.UUID
	Studio   booking.Studio
	Date     time.Time
	StartMin int
	EndMin   int
	Status   booking.Status
	Phone    string
}
