package uow

import (
	"context"
	"sort"

	"studio-booking/internal/infra"
	"studio-booking/internal/infra/repository"
	"studio-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxRetries = 3

// PostgresUnitOfWork binds the repositories to one transaction and carries
// the per-(studio,date) advisory locks that serialize the commit protocol.
type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

func NewPostgresUnitOfWork(pool *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

func (u *PostgresUnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return shared.RunInTxWithRetry(ctx, u.pool, maxRetries, func(tx pgx.Tx) error {
		return fn(ctx, &pgTx{tx: tx})
	})
}

type pgTx struct {
	tx pgx.Tx
}

// LockSchedules takes transaction-scoped advisory locks, one per key, in
// deterministic order so concurrent multi-key holders cannot deadlock. The
// locks release automatically on commit or rollback, which bounds the hold
// time to one validation-plus-write.
func (t *pgTx) LockSchedules(ctx context.Context, keys ...shared.ScheduleKey) error {
	sorted := make([]string, len(keys))
	for i, k := range keys {
		sorted[i] = k.String()
	}
	sort.Strings(sorted)

	seen := make(map[string]struct{}, len(sorted))
	for _, key := range sorted {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, err := t.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
			return infra.WrapRepoErr("failed to lock schedule", err)
		}
	}
	return nil
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	return repository.NewReservationRepository(t.tx)
}

func (t *pgTx) Blackouts() shared.BlackoutRepository {
	return repository.NewBlackoutRepository(t.tx)
}

func (t *pgTx) Reminders() shared.ReminderRepository {
	return repository.NewReminderRepository(t.tx)
}
