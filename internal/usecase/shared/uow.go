package shared

import (
	"context"
	"time"

	"studio-booking/internal/domain/blackout"
	"studio-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// ScheduleKey identifies the serialization scope of the atomic commit
// protocol: all mutations touching the same studio+date must serialize,
// disjoint keys must not block each other.
type ScheduleKey struct {
	Studio booking.Studio
	Date   time.Time
}

func (k ScheduleKey) String() string {
	return k.Studio.String() + "|" + k.Date.Format(booking.DateLayout)
}

type UnitOfWork interface {
	// Within runs fn in one transaction; retryable serialization failures are
	// retried with bounded backoff, everything else rolls back untouched.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	// LockSchedules takes exclusive per-(studio,date) locks for the duration
	// of the transaction. Keys are acquired in deterministic order.
	LockSchedules(ctx context.Context, keys ...ScheduleKey) error
	Reservations() ReservationRepository
	Blackouts() BlackoutRepository
	Reminders() ReminderRepository
}

type ReservationRepository interface {
	Insert(ctx context.Context, res *booking.Reservation) error
	Update(ctx context.Context, res *booking.Reservation) error
	Get(ctx context.Context, id uuid.UUID) (*booking.Reservation, error)
	// FindOverlapping returns pending/confirmed reservations on studio+date
	// whose raw interval intersects [startMin, endMin). exclude may be
	// uuid.Nil.
	FindOverlapping(ctx context.Context, studio booking.Studio, date time.Time, startMin, endMin int, exclude uuid.UUID) ([]ReservationSnapshot, error)
	// DatesWithConfirmedOverlap filters the given dates down to those holding
	// a confirmed reservation that intersects the raw interval.
	DatesWithConfirmedOverlap(ctx context.Context, studio booking.Studio, dates []time.Time, startMin, endMin int) (map[string]struct{}, error)
}

type BlackoutRepository interface {
	Insert(ctx context.Context, slot *blackout.Slot) error
	// UpsertMany inserts one row per date, skipping rows that already exist,
	// and reports how many were newly created.
	UpsertMany(ctx context.Context, studio booking.Studio, dates []time.Time, startMin, endMin int, createdBy string) (int64, error)
	HasOverlapping(ctx context.Context, studio booking.Studio, date time.Time, startMin, endMin int) (bool, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteRange(ctx context.Context, studio booking.Studio, from, to time.Time) (int64, error)
}

type ReminderRepository interface {
	InsertBatch(ctx context.Context, reminders []booking.Reminder) error
	CancelPending(ctx context.Context, reservationID uuid.UUID) error
}

// SettingsReader supplies the validation tunables, defaults applied when
// unset. Staleness is tolerated; the overlap check does not depend on it.
type SettingsReader interface {
	Current(ctx context.Context) (Settings, error)
}
