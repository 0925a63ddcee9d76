package notify

import (
	"context"
	"log/slog"
	"time"

	"studio-booking/internal/infra/repository"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pumpBatchSize = 100

// ReminderDueEvent is handed to the dispatcher when a pending reminder comes
// due. Whether a long-past-due reminder still fires is decided downstream.
type ReminderDueEvent struct {
	ReminderID    uuid.UUID `json:"reminder_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Kind          string    `json:"kind"`
	FireAt        time.Time `json:"fire_at"`
}

type ReminderPublisher interface {
	PublishReminder(ctx context.Context, event ReminderDueEvent) error
}

// ReminderPump periodically claims due pending reminders and hands them to
// the dispatcher. Claimed rows are marked sent only after a successful
// publish, so a failed delivery is retried on the next tick.
type ReminderPump struct {
	pool      *pgxpool.Pool
	publisher ReminderPublisher
	clock     clock.Clock
	interval  time.Duration
	logger    *slog.Logger
	stopChan  chan struct{}
}

func NewReminderPump(pool *pgxpool.Pool, publisher ReminderPublisher, clk clock.Clock, interval time.Duration, logger *slog.Logger) *ReminderPump {
	return &ReminderPump{
		pool:      pool,
		publisher: publisher,
		clock:     clk,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

func (p *ReminderPump) Start(ctx context.Context) {
	p.logger.Info("starting reminder pump", "interval", p.interval)
	go p.run(ctx)
}

func (p *ReminderPump) Stop() {
	p.logger.Info("stopping reminder pump")
	close(p.stopChan)
}

func (p *ReminderPump) run(ctx context.Context) {
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.tick(ctx)
		case <-p.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *ReminderPump) tick(ctx context.Context) {
	err := shared.RunInTx(ctx, p.pool, func(tx pgx.Tx) error {
		repo := repository.NewReminderRepository(tx)

		due, err := repo.DuePending(ctx, p.clock.Now(), pumpBatchSize)
		if err != nil {
			return err
		}

		for _, rem := range due {
			event := ReminderDueEvent{
				ReminderID:    rem.ID,
				ReservationID: rem.ReservationID,
				Kind:          string(rem.Kind),
				FireAt:        rem.FireAt,
			}
			if err := p.publisher.PublishReminder(ctx, event); err != nil {
				// Leave the row pending; the next tick retries it.
				p.logger.Warn("reminder publish failed", "reminder_id", rem.ID, "error", err)
				continue
			}
			if err := repo.MarkSent(ctx, rem.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		p.logger.Error("reminder pump tick failed", "error", err)
	}
}
