package booking

import "errors"

var ErrInvalidStudio = errors.New("invalid studio")

// Studio is one of the three physical rooms offered for booking.
type Studio string

const (
	StudioA Studio = "studio_a"
	StudioB Studio = "studio_b"
	StudioC Studio = "studio_c"
)

func ParseStudio(s string) (Studio, error) {
	studio := Studio(s)
	if !studio.IsValid() {
		return "", ErrInvalidStudio
	}
	return studio, nil
}

func (s Studio) IsValid() bool {
	switch s {
	case StudioA, StudioB, StudioC:
		return true
	default:
		return false
	}
}

func (s Studio) String() string {
	return string(s)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// Occupies reports whether a reservation in this status counts against the
// no-overlap invariant. Terminal statuses are history, not occupancy.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}
