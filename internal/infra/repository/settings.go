package repository

import (
	"context"
	"errors"

	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

// SettingsRepository reads the single global settings row, defaults applied
// when it is absent. Reads are fresh per request; last write wins.
type SettingsRepository struct {
	db db.DBTX
}

func NewSettingsRepository(dbtx db.DBTX) *SettingsRepository {
	return &SettingsRepository{db: dbtx}
}

func (r *SettingsRepository) Current(ctx context.Context) (shared.Settings, error) {
	query := `
		SELECT min_duration_hours, max_duration_hours, buffer_minutes,
			advance_booking_days, opening_hour, closing_hour
		FROM booking_settings
		WHERE id = 1
	`

	settings := shared.DefaultSettings()
	err := r.db.QueryRow(ctx, query).Scan(
		&settings.MinDurationHours,
		&settings.MaxDurationHours,
		&settings.BufferMinutes,
		&settings.AdvanceBookingDays,
		&settings.OpeningHour,
		&settings.ClosingHour,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.DefaultSettings(), nil
		}
		return shared.Settings{}, infra.WrapRepoErr("failed to read booking settings", err)
	}
	return settings, nil
}
