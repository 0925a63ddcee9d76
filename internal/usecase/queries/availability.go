package queries

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"
)

var ErrInvalidAvailabilityQuery = errs.New("studio and date are required")

// OpenWindow is one bookable sub-interval of a studio's day.
type OpenWindow struct {
	Start string
	End   string
}

// AvailabilityReadStore returns every interval occupying a studio's day:
// pending/confirmed reservations plus blackout slots, raw (unexpanded).
type AvailabilityReadStore interface {
	BusyIntervals(ctx context.Context, studio booking.Studio, date time.Time) ([]booking.Interval, error)
}

type AvailabilityQueries interface {
	// ListOpenWindows returns the ordered free sub-intervals between the
	// configured opening and closing hour.
	ListOpenWindows(ctx context.Context, studio string, date string) ([]OpenWindow, error)
}

type availabilityQueries struct {
	store    AvailabilityReadStore
	settings shared.SettingsReader
	loc      *time.Location
}

func NewAvailabilityQueries(store AvailabilityReadStore, settings shared.SettingsReader, loc *time.Location) AvailabilityQueries {
	return &availabilityQueries{store: store, settings: settings, loc: loc}
}

func (q *availabilityQueries) ListOpenWindows(ctx context.Context, studioStr string, dateStr string) ([]OpenWindow, error) {
	studio, err := booking.ParseStudio(studioStr)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAvailabilityQuery)
	}
	date, err := time.ParseInLocation(booking.DateLayout, dateStr, q.loc)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidAvailabilityQuery)
	}

	settings, err := q.settings.Current(ctx)
	if err != nil {
		return nil, err
	}

	busy, err := q.store.BusyIntervals(ctx, studio, date)
	if err != nil {
		return nil, err
	}

	free := booking.FreeWindows(settings.OpeningMin(), settings.ClosingMin(), busy)
	windows := make([]OpenWindow, len(free))
	for i, w := range free {
		windows[i] = OpenWindow{
			Start: booking.FromMinutes(w.Start),
			End:   booking.FromMinutes(w.End),
		}
	}
	return windows, nil
}
