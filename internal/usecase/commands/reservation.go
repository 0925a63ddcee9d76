package commands

import (
	"context"
	"log/slog"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidPhone             = errs.New("phone must contain exactly 10 digits")
	ErrMissingFields            = errs.New("studio, date, start and end are required")
	ErrDurationOutOfRange       = errs.New("duration out of allowed range")
	ErrDateOutOfWindow          = errs.New("date outside the booking window")
	ErrSlotUnavailable          = errs.New("slot unavailable")
	ErrNotFoundOrForbidden      = errs.New("reservation not found or phone mismatch")
	ErrImmutableStatus          = errs.New("reservation status does not allow this operation")
	ErrModificationWindowClosed = errs.New("modifications close 24 hours before start")
	ErrBookingAlreadyElapsed    = errs.New("reservation start is already in the past")
	ErrStoreFailure             = errs.New("store operation failed")
)

const modificationWindow = 24 * time.Hour

type CreateReservationInput struct {
	Studio      string
	Date        string
	Start       string
	End         string
	Phone       string
	Name        *string
	Email       *string
	RatePerHour *float64
}

type ModifyReservationInput struct {
	ReservationID uuid.UUID
	Phone         string
	Studio        string
	Date          string
	Start         string
	End           string
	Name          *string
	Email         *string
	RatePerHour   *float64
}

type CancelReservationInput struct {
	ReservationID uuid.UUID
	Phone         string
	// StaffContext bypasses the phone ownership check. The caller has already
	// authenticated the staff member; the engine only trusts the flag.
	StaffContext bool
	Reason       *string
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*booking.Reservation, error)
	Modify(ctx context.Context, in ModifyReservationInput) (*booking.Reservation, error)
	Cancel(ctx context.Context, in CancelReservationInput) (*booking.Reservation, error)
}

type reservationCommands struct {
	uow       shared.UnitOfWork
	settings  shared.SettingsReader
	publisher EventPublisher
	clock     clock.Clock
	loc       *time.Location
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	settings shared.SettingsReader,
	publisher EventPublisher,
	clk clock.Clock,
	loc *time.Location,
) ReservationCommands {
	return &reservationCommands{
		uow:       uow,
		settings:  settings,
		publisher: publisher,
		clock:     clk,
		loc:       loc,
	}
}

// requestedSlot is a parsed (studio, date, interval) triple.
type requestedSlot struct {
	studio   booking.Studio
	date     time.Time
	startMin int
	endMin   int
}

func (c *reservationCommands) Create(ctx context.Context, in CreateReservationInput) (*booking.Reservation, error) {
	phone, err := booking.NewPhone(in.Phone)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPhone)
	}

	slot, err := c.parseSlot(in.Studio, in.Date, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	settings, err := c.settings.Current(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	if err := validateDuration(slot, settings); err != nil {
		return nil, err
	}
	if err := c.validateDateWindow(slot.date, settings); err != nil {
		return nil, err
	}

	res, err := booking.NewReservation(slot.studio, slot.date, slot.startMin, slot.endMin, phone, in.Name, in.Email, in.RatePerHour)
	if err != nil {
		return nil, errs.Mark(err, ErrMissingFields)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockSchedules(ctx, shared.ScheduleKey{Studio: slot.studio, Date: slot.date}); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}

		if err := c.checkSlotFree(ctx, tx, slot, settings.BufferMinutes, uuid.Nil); err != nil {
			return err
		}

		if err := tx.Reservations().Insert(ctx, res); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}

		reminders := booking.ScheduleReminders(res.ID(), res.StartAt(c.loc), c.clock.Now())
		if err := tx.Reminders().InsertBatch(ctx, reminders); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishAfterCommit(res, EventReservationCreated, nil)
	return res, nil
}

func (c *reservationCommands) Modify(ctx context.Context, in ModifyReservationInput) (*booking.Reservation, error) {
	phone, err := booking.NewPhone(in.Phone)
	if err != nil {
		return nil, errs.Mark(err, ErrNotFoundOrForbidden)
	}

	slot, err := c.parseSlot(in.Studio, in.Date, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	settings, err := c.settings.Current(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreFailure)
	}

	if err := validateDuration(slot, settings); err != nil {
		return nil, err
	}
	if err := c.validateDateWindow(slot.date, settings); err != nil {
		return nil, err
	}

	var res *booking.Reservation
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Unlocked read to learn the current schedule key, then lock and
		// re-read so the preconditions see committed state only.
		current, err := tx.Reservations().Get(ctx, in.ReservationID)
		if err != nil {
			return markLookupErr(err)
		}

		oldKey := shared.ScheduleKey{Studio: current.Studio(), Date: current.Date()}
		newKey := shared.ScheduleKey{Studio: slot.studio, Date: slot.date}
		if err := tx.LockSchedules(ctx, oldKey, newKey); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}

		res, err = tx.Reservations().Get(ctx, in.ReservationID)
		if err != nil {
			return markLookupErr(err)
		}
		if res.Phone() != phone {
			return ErrNotFoundOrForbidden
		}
		if res.Status() == booking.StatusCancelled || res.Status() == booking.StatusCompleted {
			return ErrImmutableStatus
		}
		// The 24h guard uses the existing start time, not the proposed one.
		if res.StartAt(c.loc).Sub(c.clock.Now()) < modificationWindow {
			return ErrModificationWindowClosed
		}

		if err := c.checkSlotFree(ctx, tx, slot, settings.BufferMinutes, res.ID()); err != nil {
			return err
		}

		if err := res.Reschedule(slot.studio, slot.date, slot.startMin, slot.endMin, in.Name, in.Email, in.RatePerHour, c.clock.Now()); err != nil {
			return errs.Mark(err, ErrMissingFields)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}

		if err := tx.Reminders().CancelPending(ctx, res.ID()); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}
		if err := tx.Reminders().InsertBatch(ctx, booking.RescheduleReminders(res.ID(), res.StartAt(c.loc))); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishAfterCommit(res, EventReservationModified, nil)
	return res, nil
}

func (c *reservationCommands) Cancel(ctx context.Context, in CancelReservationInput) (*booking.Reservation, error) {
	var phone booking.Phone
	if !in.StaffContext {
		var err error
		phone, err = booking.NewPhone(in.Phone)
		if err != nil {
			return nil, errs.Mark(err, ErrNotFoundOrForbidden)
		}
	}

	var res *booking.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reservations().Get(ctx, in.ReservationID)
		if err != nil {
			return markLookupErr(err)
		}

		key := shared.ScheduleKey{Studio: current.Studio(), Date: current.Date()}
		if err := tx.LockSchedules(ctx, key); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}

		res, err = tx.Reservations().Get(ctx, in.ReservationID)
		if err != nil {
			return markLookupErr(err)
		}
		if !in.StaffContext && res.Phone() != phone {
			return ErrNotFoundOrForbidden
		}
		if !res.Status().Occupies() {
			return ErrImmutableStatus
		}
		now := c.clock.Now()
		if res.StartAt(c.loc).Before(now) {
			return ErrBookingAlreadyElapsed
		}

		if err := res.Cancel(now); err != nil {
			return errs.Mark(err, ErrImmutableStatus)
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}
		if err := tx.Reminders().CancelPending(ctx, res.ID()); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publishAfterCommit(res, EventReservationCancelled, in.Reason)
	return res, nil
}

func (c *reservationCommands) parseSlot(studioStr, dateStr, startStr, endStr string) (requestedSlot, error) {
	if studioStr == "" || dateStr == "" || startStr == "" || endStr == "" {
		return requestedSlot{}, ErrMissingFields
	}

	studio, err := booking.ParseStudio(studioStr)
	if err != nil {
		return requestedSlot{}, errs.Mark(err, ErrMissingFields)
	}
	date, err := time.ParseInLocation(booking.DateLayout, dateStr, c.loc)
	if err != nil {
		return requestedSlot{}, errs.Mark(err, ErrMissingFields)
	}
	startMin, err := booking.ToMinutes(startStr)
	if err != nil {
		return requestedSlot{}, errs.Mark(err, ErrMissingFields)
	}
	endMin, err := booking.ToMinutes(endStr)
	if err != nil {
		return requestedSlot{}, errs.Mark(err, ErrMissingFields)
	}
	if endMin <= startMin {
		return requestedSlot{}, ErrMissingFields
	}

	return requestedSlot{studio: studio, date: date, startMin: startMin, endMin: endMin}, nil
}

func validateDuration(slot requestedSlot, settings shared.Settings) error {
	hours := float64(slot.endMin-slot.startMin) / 60.0
	if hours < float64(settings.MinDurationHours) {
		return errs.Mark(
			errs.Newf("duration %.2fh is below the minimum of %dh", hours, settings.MinDurationHours),
			ErrDurationOutOfRange,
		)
	}
	if hours > float64(settings.MaxDurationHours) {
		return errs.Mark(
			errs.Newf("duration %.2fh exceeds the maximum of %dh", hours, settings.MaxDurationHours),
			ErrDurationOutOfRange,
		)
	}
	return nil
}

// validateDateWindow rejects same-day and past dates on the customer path and
// enforces the advance-booking horizon.
func (c *reservationCommands) validateDateWindow(date time.Time, settings shared.Settings) error {
	now := c.clock.Now().In(c.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)

	if !date.After(today) {
		return errs.Mark(errs.New("same-day and past dates are not bookable"), ErrDateOutOfWindow)
	}
	horizon := today.AddDate(0, 0, settings.AdvanceBookingDays)
	if date.After(horizon) {
		return errs.Mark(
			errs.Newf("date is beyond the %d-day booking horizon", settings.AdvanceBookingDays),
			ErrDateOutOfWindow,
		)
	}
	return nil
}

// checkSlotFree applies the buffer-expanded reservation check and the raw
// blackout check. Blackouts are intentionally not buffer-expanded.
func (c *reservationCommands) checkSlotFree(ctx context.Context, tx shared.Tx, slot requestedSlot, bufferMin int, exclude uuid.UUID) error {
	qStart, qEnd := booking.Expand(slot.startMin, slot.endMin, bufferMin)
	conflicts, err := tx.Reservations().FindOverlapping(ctx, slot.studio, slot.date, qStart, qEnd, exclude)
	if err != nil {
		return errs.Mark(err, ErrStoreFailure)
	}
	if len(conflicts) > 0 {
		return ErrSlotUnavailable
	}

	blocked, err := tx.Blackouts().HasOverlapping(ctx, slot.studio, slot.date, slot.startMin, slot.endMin)
	if err != nil {
		return errs.Mark(err, ErrStoreFailure)
	}
	if blocked {
		return ErrSlotUnavailable
	}
	return nil
}

func markLookupErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrNotFoundOrForbidden)
	}
	return errs.Mark(err, ErrStoreFailure)
}

// publishAfterCommit hands the committed reservation to the dispatcher
// outside the atomic section. A publish failure is logged and swallowed; the
// reservation is already durable.
func (c *reservationCommands) publishAfterCommit(res *booking.Reservation, kind EventKind, reason *string) {
	event := ReservationEvent{
		Kind:          kind,
		ReservationID: res.ID(),
		Studio:        res.Studio().String(),
		Date:          res.Date().Format(booking.DateLayout),
		Start:         booking.FromMinutes(res.StartMin()),
		End:           booking.FromMinutes(res.EndMin()),
		Status:        res.Status().String(),
		Phone:         res.Phone().String(),
		Name:          res.Name(),
		Email:         res.Email(),
		TotalAmount:   res.TotalAmount(),
		Reason:        reason,
		OccurredAt:    c.clock.Now(),
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("event publish panicked", "kind", kind, "panic", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.publisher.Publish(ctx, event); err != nil {
			slog.Warn("post-commit event publish failed", "kind", kind, "reservation_id", event.ReservationID, "error", err)
		}
	}()
}
