// Package blackout models admin-declared intervals in which a studio is not
// offered to customers, independent of any reservation.
package blackout

import (
	"errors"
	"time"

	"studio-booking/internal/domain/booking"

	"github.com/google/uuid"
)

var ErrIncompleteSlot = errors.New("studio, date, start and end are required and end must be after start")

type Slot struct {
	ID       uuid.UUID
	Studio   booking.Studio
	Date     time.Time
	StartMin int
	EndMin   int
	// Available is kept for schema symmetry; administrative creation always
	// sets it false.
	Available bool
	CreatedBy string
	CreatedAt time.Time
}

func NewSlot(studio booking.Studio, date time.Time, startMin, endMin int, createdBy string) (*Slot, error) {
	if !studio.IsValid() || date.IsZero() {
		return nil, ErrIncompleteSlot
	}
	if startMin < 0 || endMin > booking.MinutesPerDay || endMin <= startMin {
		return nil, ErrIncompleteSlot
	}

	return &Slot{
		ID:        uuid.New(),
		Studio:    studio,
		Date:      date,
		StartMin:  startMin,
		EndMin:    endMin,
		Available: false,
		CreatedBy: createdBy,
	}, nil
}
