package readstore

import (
	"context"
	"errors"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(dbtx db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: dbtx}
}

const viewColumns = `id, studio, date, start_min, end_min, status, phone, name, email,
	rate_per_hour, total_amount, created_at, updated_at, cancelled_at`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	query := `SELECT ` + viewColumns + ` FROM reservations WHERE id = $1`

	view, err := scanView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByPhone(ctx context.Context, phone string) ([]*queries.ReservationView, error) {
	query := `SELECT ` + viewColumns + ` FROM reservations WHERE phone = $1 ORDER BY date DESC, start_min DESC`

	return r.findMany(ctx, query, phone)
}

func (r *ReservationReadStore) FindByStudioDate(ctx context.Context, studio booking.Studio, date time.Time) ([]*queries.ReservationView, error) {
	query := `SELECT ` + viewColumns + ` FROM reservations WHERE studio = $1 AND date = $2 ORDER BY start_min`

	return r.findMany(ctx, query, studio.String(), date)
}

func (r *ReservationReadStore) findMany(ctx context.Context, query string, args ...any) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query reservations", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return views, nil
}

func scanView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		view     queries.ReservationView
		date     time.Time
		startMin int
		endMin   int
	)

	err := row.Scan(
		&view.ID, &view.Studio, &date, &startMin, &endMin, &view.Status, &view.Phone,
		&view.Name, &view.Email, &view.RatePerHour, &view.TotalAmount,
		&view.CreatedAt, &view.UpdatedAt, &view.CancelledAt,
	)
	if err != nil {
		return nil, err
	}

	view.Date = date.Format(booking.DateLayout)
	view.Start = booking.FromMinutes(startMin)
	view.End = booking.FromMinutes(endMin)
	return &view, nil
}
