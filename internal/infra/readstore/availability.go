package readstore

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

// BusyIntervals unions occupying reservations and blackout slots for one
// studio day, raw (no buffer expansion).
func (r *AvailabilityReadStore) BusyIntervals(ctx context.Context, studio booking.Studio, date time.Time) ([]booking.Interval, error) {
	query := `
		SELECT start_min, end_min FROM reservations
		WHERE studio = $1 AND date = $2 AND status IN ('pending', 'confirmed')
		UNION ALL
		SELECT start_min, end_min FROM blackout_slots
		WHERE studio = $1 AND date = $2
		ORDER BY start_min
	`

	rows, err := r.db.Query(ctx, query, studio.String(), date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query busy intervals", err)
	}
	defer rows.Close()

	var busy []booking.Interval
	for rows.Next() {
		var iv booking.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan busy interval", err)
		}
		busy = append(busy, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read busy intervals", err)
	}
	return busy, nil
}
