package repository

import (
	"context"
	"errors"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(dbtx db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: dbtx}
}

const reservationColumns = `id, studio, date, start_min, end_min, status, phone, name, email,
	rate_per_hour, total_amount, calendar_event_id, email_sent, created_at, updated_at, cancelled_at`

func (r *ReservationRepository) Insert(ctx context.Context, res *booking.Reservation) error {
	query := `
		INSERT INTO reservations (
			id, studio, date, start_min, end_min, status, phone, name, email,
			rate_per_hour, total_amount, calendar_event_id, email_sent, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		res.ID(),
		res.Studio().String(),
		res.Date(),
		res.StartMin(),
		res.EndMin(),
		res.Status().String(),
		res.Phone().String(),
		res.Name(),
		res.Email(),
		res.RatePerHour(),
		res.TotalAmount(),
		res.CalendarEventID(),
		res.EmailSent(),
		res.CreatedAt(),
		res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *booking.Reservation) error {
	query := `
		UPDATE reservations
		SET studio = $2, date = $3, start_min = $4, end_min = $5, status = $6,
			name = $7, email = $8, rate_per_hour = $9, total_amount = $10,
			calendar_event_id = $11, email_sent = $12, updated_at = $13, cancelled_at = $14
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		res.ID(),
		res.Studio().String(),
		res.Date(),
		res.StartMin(),
		res.EndMin(),
		res.Status().String(),
		res.Name(),
		res.Email(),
		res.RatePerHour(),
		res.TotalAmount(),
		res.CalendarEventID(),
		res.EmailSent(),
		res.UpdatedAt(),
		res.CancelledAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) Get(ctx context.Context, id uuid.UUID) (*booking.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindOverlapping(
	ctx context.Context,
	studio booking.Studio,
	date time.Time,
	startMin, endMin int,
	exclude uuid.UUID,
) ([]shared.ReservationSnapshot, error) {
	query := `
		SELECT id, studio, date, start_min, end_min, status, phone
		FROM reservations
		WHERE studio = $1 AND date = $2
			AND status IN ('pending', 'confirmed')
			AND start_min < $4 AND end_min > $3
			AND ($5::uuid IS NULL OR id <> $5)
		ORDER BY start_min
	`

	var excludeArg any
	if exclude != uuid.Nil {
		excludeArg = exclude
	}

	rows, err := r.db.Query(ctx, query, studio.String(), date, startMin, endMin, excludeArg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var snapshots []shared.ReservationSnapshot
	for rows.Next() {
		var s shared.ReservationSnapshot
		var studioStr, statusStr string
		if err := rows.Scan(&s.ID, &studioStr, &s.Date, &s.StartMin, &s.EndMin, &statusStr, &s.Phone); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation snapshot", err)
		}
		s.Studio = booking.Studio(studioStr)
		s.Status = booking.Status(statusStr)
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlapping reservations", err)
	}
	return snapshots, nil
}

func (r *ReservationRepository) DatesWithConfirmedOverlap(
	ctx context.Context,
	studio booking.Studio,
	dates []time.Time,
	startMin, endMin int,
) (map[string]struct{}, error) {
	query := `
		SELECT DISTINCT date
		FROM reservations
		WHERE studio = $1 AND date = ANY($2)
			AND status = 'confirmed'
			AND start_min < $4 AND end_min > $3
	`

	rows, err := r.db.Query(ctx, query, studio.String(), dates, startMin, endMin)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query conflicting dates", err)
	}
	defer rows.Close()

	conflicted := make(map[string]struct{})
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, infra.WrapRepoErr("failed to scan conflicting date", err)
		}
		conflicted[d.Format(booking.DateLayout)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read conflicting dates", err)
	}
	return conflicted, nil
}

func scanReservation(row pgx.Row) (*booking.Reservation, error) {
	var (
		id                    uuid.UUID
		studioStr, statusStr  string
		date                  time.Time
		startMin, endMin      int
		phoneStr              string
		name, email           *string
		ratePerHour           *float64
		totalAmount           *int64
		calendarEventID       *string
		emailSent             bool
		createdAt, updatedAt  time.Time
		cancelledAt           *time.Time
	)

	err := row.Scan(
		&id, &studioStr, &date, &startMin, &endMin, &statusStr, &phoneStr, &name, &email,
		&ratePerHour, &totalAmount, &calendarEventID, &emailSent, &createdAt, &updatedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructReservation(
		id,
		booking.Studio(studioStr),
		date,
		startMin, endMin,
		booking.Status(statusStr),
		booking.Phone(phoneStr),
		name, email,
		ratePerHour,
		totalAmount,
		calendarEventID,
		emailSent,
		createdAt, updatedAt,
		cancelledAt,
	), nil
}
