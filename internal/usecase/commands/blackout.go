package commands

import (
	"context"
	"time"

	"studio-booking/internal/domain/blackout"
	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDuplicateBlackout  = errs.New("blackout already exists for this slot")
	ErrAllDatesInPast     = errs.New("all requested dates are in the past")
	ErrAllSlotsConflicted = errs.New("all surviving dates conflict with confirmed reservations")
	ErrBlackoutNotFound   = errs.New("blackout not found")
)

type CreateBlackoutInput struct {
	Studio    string
	Date      string
	Start     string
	End       string
	CreatedBy string
}

type BulkCreateBlackoutInput struct {
	Studio    string
	Dates     []string
	Start     string
	End       string
	CreatedBy string
}

// BulkBlackoutResult reports what actually happened: dates that survived
// filtering and how many rows were newly inserted (repeat requests report 0).
type BulkBlackoutResult struct {
	Created        int64
	SurvivingDates []string
}

type DeleteBlackoutRangeInput struct {
	Studio string
	From   string
	To     string
}

type BlackoutCommands interface {
	Create(ctx context.Context, in CreateBlackoutInput) (*blackout.Slot, error)
	BulkCreate(ctx context.Context, in BulkCreateBlackoutInput) (*BulkBlackoutResult, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteRange(ctx context.Context, in DeleteBlackoutRangeInput) (int64, error)
}

type blackoutCommands struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	loc   *time.Location
}

func NewBlackoutCommands(uow shared.UnitOfWork, clk clock.Clock, loc *time.Location) BlackoutCommands {
	return &blackoutCommands{uow: uow, clock: clk, loc: loc}
}

func (c *blackoutCommands) Create(ctx context.Context, in CreateBlackoutInput) (*blackout.Slot, error) {
	slot, err := c.parse(in.Studio, in.Date, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	entity, err := blackout.NewSlot(slot.studio, slot.date, slot.startMin, slot.endMin, in.CreatedBy)
	if err != nil {
		return nil, errs.Mark(err, ErrMissingFields)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Blackouts().Insert(ctx, entity); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrDuplicateBlackout)
			}
			return errs.Mark(err, ErrStoreFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (c *blackoutCommands) BulkCreate(ctx context.Context, in BulkCreateBlackoutInput) (*BulkBlackoutResult, error) {
	if len(in.Dates) == 0 {
		return nil, ErrMissingFields
	}
	studio, err := booking.ParseStudio(in.Studio)
	if err != nil {
		return nil, errs.Mark(err, ErrMissingFields)
	}
	startMin, err := booking.ToMinutes(in.Start)
	if err != nil {
		return nil, errs.Mark(err, ErrMissingFields)
	}
	endMin, err := booking.ToMinutes(in.End)
	if err != nil {
		return nil, errs.Mark(err, ErrMissingFields)
	}
	if endMin <= startMin {
		return nil, ErrMissingFields
	}

	dates := make([]time.Time, 0, len(in.Dates))
	for _, d := range in.Dates {
		date, err := time.ParseInLocation(booking.DateLayout, d, c.loc)
		if err != nil {
			return nil, errs.Mark(err, ErrMissingFields)
		}
		dates = append(dates, date)
	}

	// Unlike the customer path, today is allowed as long as the start time
	// has not elapsed yet.
	now := c.clock.Now().In(c.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
	nowMin := now.Hour()*60 + now.Minute()

	future := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if d.Before(today) {
			continue
		}
		if d.Equal(today) && startMin <= nowMin {
			continue
		}
		future = append(future, d)
	}
	if len(future) == 0 {
		return nil, ErrAllDatesInPast
	}

	var result BulkBlackoutResult
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		keys := make([]shared.ScheduleKey, len(future))
		for i, d := range future {
			keys[i] = shared.ScheduleKey{Studio: studio, Date: d}
		}
		if err := tx.LockSchedules(ctx, keys...); err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}

		// Confirmed reservations block a blackout; the buffer is not applied
		// on the administrative path.
		conflicted, err := tx.Reservations().DatesWithConfirmedOverlap(ctx, studio, future, startMin, endMin)
		if err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}

		surviving := make([]time.Time, 0, len(future))
		for _, d := range future {
			if _, ok := conflicted[d.Format(booking.DateLayout)]; ok {
				continue
			}
			surviving = append(surviving, d)
		}
		if len(surviving) == 0 {
			return ErrAllSlotsConflicted
		}

		created, err := tx.Blackouts().UpsertMany(ctx, studio, surviving, startMin, endMin, in.CreatedBy)
		if err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}

		result.Created = created
		result.SurvivingDates = make([]string, len(surviving))
		for i, d := range surviving {
			result.SurvivingDates[i] = d.Format(booking.DateLayout)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *blackoutCommands) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	var deleted int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Blackouts().DeleteByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}
		if n == 0 {
			return ErrBlackoutNotFound
		}
		deleted = n
		return nil
	})
	return deleted, err
}

func (c *blackoutCommands) DeleteRange(ctx context.Context, in DeleteBlackoutRangeInput) (int64, error) {
	studio, err := booking.ParseStudio(in.Studio)
	if err != nil {
		return 0, errs.Mark(err, ErrMissingFields)
	}
	from, err := time.ParseInLocation(booking.DateLayout, in.From, c.loc)
	if err != nil {
		return 0, errs.Mark(err, ErrMissingFields)
	}
	to, err := time.ParseInLocation(booking.DateLayout, in.To, c.loc)
	if err != nil {
		return 0, errs.Mark(err, ErrMissingFields)
	}
	if to.Before(from) {
		return 0, ErrMissingFields
	}

	var deleted int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Blackouts().DeleteRange(ctx, studio, from, to)
		if err != nil {
			return errs.Mark(err, ErrStoreFailure)
		}
		if n == 0 {
			return ErrBlackoutNotFound
		}
		deleted = n
		return nil
	})
	return deleted, err
}

// parse mirrors the reservation slot parsing without the phone requirement.
func (c *blackoutCommands) parse(studioStr, dateStr, startStr, endStr string) (requestedSlot, error) {
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
