package queries

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrReservationNotFound = errs.New("reservation not found")

// ReservationView is the read model returned to callers. Times are rendered
// back to wall-clock strings.
type ReservationView struct {
	ID          uuid.UUID
	Studio      string
	Date        string
	Start       string
	End         string
	Status      string
	Phone       string
	Name        *string
	Email       *string
	RatePerHour *float64
	TotalAmount *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByPhone(ctx context.Context, phone string) ([]*ReservationView, error)
	FindByStudioDate(ctx context.Context, studio booking.Studio, date time.Time) ([]*ReservationView, error)
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByPhone(ctx context.Context, phone string) ([]*ReservationView, error)
	ListByStudioDate(ctx context.Context, studio string, date string) ([]*ReservationView, error)
}

type reservationQueries struct {
	store ReservationReadStore
	loc   *time.Location
}

func NewReservationQueries(store ReservationReadStore, loc *time.Location) ReservationQueries {
	return &reservationQueries{store: store, loc: loc}
}

func (q *reservationQueries) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *reservationQueries) ListByPhone(ctx context.Context, phone string) ([]*ReservationView, error) {
	normalized, err := booking.NewPhone(phone)
	if err != nil {
		return nil, errs.Mark(err, ErrReservationNotFound)
	}
	return q.store.FindByPhone(ctx, normalized.String())
}

func (q *reservationQueries) ListByStudioDate(ctx context.Context, studioStr string, dateStr string) ([]*ReservationView, error) {
	studio, err := booking.ParseStudio(studioStr)
	if err != nil {
		return nil, errs.Mark(err, ErrReservationNotFound)
	}
	date, err := time.ParseInLocation(booking.DateLayout, dateStr, q.loc)
	if err != nil {
		return nil, errs.Mark(err, ErrReservationNotFound)
	}
	return q.store.FindByStudioDate(ctx, studio, date)
}
