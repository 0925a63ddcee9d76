package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrIncompleteRequest = errors.New("studio, date, start and end are required and end must be after start")
	ErrNotCancellable    = errors.New("reservation is not in a cancellable status")
	ErrNotModifiable     = errors.New("reservation is not in a modifiable status")
)

// Reservation is a claim on one studio for a contiguous range on a single
// calendar date. Times are minutes of local wall-clock day.
type Reservation struct {
	id              uuid.UUID
	studio          Studio
	date            time.Time
	startMin        int
	endMin          int
	status          Status
	phone           Phone
	name            *string
	email           *string
	ratePerHour     *float64
	totalAmount     *int64
	calendarEventID *string
	emailSent       bool
	createdAt       time.Time
	updatedAt       time.Time
	cancelledAt     *time.Time
}

func NewReservation(
	studio Studio,
	date time.Time,
	startMin, endMin int,
	phone Phone,
	name, email *string,
	ratePerHour *float64,
) (*Reservation, error) {
	if !studio.IsValid() || date.IsZero() {
		return nil, ErrIncompleteRequest
	}
	if startMin < 0 || endMin > MinutesPerDay || endMin <= startMin {
		return nil, ErrIncompleteRequest
	}

	now := time.Now()
	return &Reservation{
		id:          uuid.New(),
		studio:      studio,
		date:        date,
		startMin:    startMin,
		endMin:      endMin,
		status:      StatusConfirmed,
		phone:       phone,
		name:        name,
		email:       email,
		ratePerHour: ratePerHour,
		totalAmount: TotalAmount(ratePerHour, startMin, endMin),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	studio Studio,
	date time.Time,
	startMin, endMin int,
	status Status,
	phone Phone,
	name, email *string,
	ratePerHour *float64,
	totalAmount *int64,
	calendarEventID *string,
	emailSent bool,
	createdAt, updatedAt time.Time,
	cancelledAt *time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		studio:          studio,
		date:            date,
		startMin:        startMin,
		endMin:          endMin,
		status:          status,
		phone:           phone,
		name:            name,
		email:           email,
		ratePerHour:     ratePerHour,
		totalAmount:     totalAmount,
		calendarEventID: calendarEventID,
		emailSent:       emailSent,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		cancelledAt:     cancelledAt,
	}
}

// Reschedule moves the reservation to a new studio/date/time and recomputes
// the derived total. Callers must have re-validated the new interval.
func (r *Reservation) Reschedule(studio Studio, date time.Time, startMin, endMin int, name, email *string, ratePerHour *float64, at time.Time) error {
	if r.status == StatusCancelled || r.status == StatusCompleted {
		return ErrNotModifiable
	}
	if !studio.IsValid() || date.IsZero() || startMin < 0 || endMin > MinutesPerDay || endMin <= startMin {
		return ErrIncompleteRequest
	}

	r.studio = studio
	r.date = date
	r.startMin = startMin
	r.endMin = endMin
	if name != nil {
		r.name = name
	}
	if email != nil {
		r.email = email
	}
	if ratePerHour != nil {
		r.ratePerHour = ratePerHour
	}
	r.totalAmount = TotalAmount(r.ratePerHour, startMin, endMin)
	r.updatedAt = at
	return nil
}

// Cancel transitions to the terminal cancelled status.
func (r *Reservation) Cancel(at time.Time) error {
	if !r.status.Occupies() {
		return ErrNotCancellable
	}
	r.status = StatusCancelled
	r.cancelledAt = &at
	r.updatedAt = at
	return nil
}

// StartAt resolves the reservation start to an absolute instant in the
// operating timezone.
func (r *Reservation) StartAt(loc *time.Location) time.Time {
	y, m, d := r.date.Date()
	return time.Date(y, m, d, 0, r.startMin, 0, 0, loc)
}

func (r *Reservation) ID() uuid.UUID            { return r.id }
func (r *Reservation) Studio() Studio           { return r.studio }
func (r *Reservation) Date() time.Time          { return r.date }
func (r *Reservation) StartMin() int            { return r.startMin }
func (r *Reservation) EndMin() int              { return r.endMin }
func (r *Reservation) Status() Status           { return r.status }
func (r *Reservation) Phone() Phone             { return r.phone }
func (r *Reservation) Name() *string            { return r.name }
func (r *Reservation) Email() *string           { return r.email }
func (r *Reservation) RatePerHour() *float64    { return r.ratePerHour }
func (r *Reservation) TotalAmount() *int64      { return r.totalAmount }
func (r *Reservation) CalendarEventID() *string { return r.calendarEventID }
func (r *Reservation) EmailSent() bool          { return r.emailSent }
func (r *Reservation) CreatedAt() time.Time     { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time     { return r.updatedAt }
func (r *Reservation) CancelledAt() *time.Time  { return r.cancelledAt }
