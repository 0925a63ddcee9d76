package repository

import (
	"context"
	"errors"
	"time"

	"studio-booking/internal/domain/blackout"
	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

type BlackoutRepository struct {
	db db.DBTX
}

func NewBlackoutRepository(dbtx db.DBTX) *BlackoutRepository {
	return &BlackoutRepository{db: dbtx}
}

func (r *BlackoutRepository) Insert(ctx context.Context, slot *blackout.Slot) error {
	query := `
		INSERT INTO blackout_slots (id, studio, date, start_min, end_min, available, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		slot.ID,
		slot.Studio.String(),
		slot.Date,
		slot.StartMin,
		slot.EndMin,
		slot.Available,
		slot.CreatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return infra.WrapRepoErr("blackout already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert blackout", err)
	}
	return nil
}

// UpsertMany is the idempotent bulk path: rows that already exist are skipped
// so repeated requests are safe to retry.
func (r *BlackoutRepository) UpsertMany(
	ctx context.Context,
	studio booking.Studio,
	dates []time.Time,
	startMin, endMin int,
	createdBy string,
) (int64, error) {
	query := `
		INSERT INTO blackout_slots (id, studio, date, start_min, end_min, available, created_by)
		VALUES ($1, $2, $3, $4, $5, false, $6)
		ON CONFLICT (studio, date, start_min, end_min) DO NOTHING
	`

	var created int64
	for _, date := range dates {
		tag, err := r.db.Exec(ctx, query, uuid.New(), studio.String(), date, startMin, endMin, createdBy)
		if err != nil {
			return 0, infra.WrapRepoErr("failed to upsert blackout", err)
		}
		created += tag.RowsAffected()
	}
	return created, nil
}

func (r *BlackoutRepository) HasOverlapping(
	ctx context.Context,
	studio booking.Studio,
	date time.Time,
	startMin, endMin int,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM blackout_slots
			WHERE studio = $1 AND date = $2 AND start_min < $4 AND end_min > $3
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, studio.String(), date, startMin, endMin).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check blackout overlap", err)
	}
	return exists, nil
}

func (r *BlackoutRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM blackout_slots WHERE id = $1`, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete blackout", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BlackoutRepository) DeleteRange(ctx context.Context, studio booking.Studio, from, to time.Time) (int64, error) {
	query := `DELETE FROM blackout_slots WHERE studio = $1 AND date BETWEEN $2 AND $3`

	tag, err := r.db.Exec(ctx, query, studio.String(), from, to)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete blackout range", err)
	}
	return tag.RowsAffected(), nil
}
