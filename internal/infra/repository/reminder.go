package repository

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"

	"github.com/google/uuid"
)

type ReminderRepository struct {
	db db.DBTX
}

func NewReminderRepository(dbtx db.DBTX) *ReminderRepository {
	return &ReminderRepository{db: dbtx}
}

func (r *ReminderRepository) InsertBatch(ctx context.Context, reminders []booking.Reminder) error {
	query := `
		INSERT INTO reminders (id, reservation_id, kind, fire_at, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, rem := range reminders {
		_, err := r.db.Exec(ctx, query, rem.ID, rem.ReservationID, string(rem.Kind), rem.FireAt, string(rem.Status))
		if err != nil {
			return infra.WrapRepoErr("failed to insert reminder", err)
		}
	}
	return nil
}

func (r *ReminderRepository) CancelPending(ctx context.Context, reservationID uuid.UUID) error {
	query := `UPDATE reminders SET status = 'cancelled' WHERE reservation_id = $1 AND status = 'pending'`

	if _, err := r.db.Exec(ctx, query, reservationID); err != nil {
		return infra.WrapRepoErr("failed to cancel pending reminders", err)
	}
	return nil
}

// DuePending claims up to limit past-due pending reminders for dispatch.
// SKIP LOCKED keeps concurrent pump instances from double-sending.
func (r *ReminderRepository) DuePending(ctx context.Context, before time.Time, limit int32) ([]booking.Reminder, error) {
	query := `
		SELECT id, reservation_id, kind, fire_at, status
		FROM reminders
		WHERE status = 'pending' AND fire_at <= $1
		ORDER BY fire_at
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	`

	rows, err := r.db.Query(ctx, query, before, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query due reminders", err)
	}
	defer rows.Close()

	var due []booking.Reminder
	for rows.Next() {
		var rem booking.Reminder
		var kind, status string
		if err := rows.Scan(&rem.ID, &rem.ReservationID, &kind, &rem.FireAt, &status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reminder", err)
		}
		rem.Kind = booking.ReminderKind(kind)
		rem.Status = booking.ReminderStatus(status)
		due = append(due, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read due reminders", err)
	}
	return due, nil
}

func (r *ReminderRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE reminders SET status = 'sent' WHERE id = $1 AND status = 'pending'`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return infra.WrapRepoErr("failed to mark reminder sent", err)
	}
	return nil
}
