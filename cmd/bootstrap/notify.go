package bootstrap

import (
	"context"
	"log/slog"

	"studio-booking/internal/infra/notify"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewDispatchers,
	),
	fx.Invoke(StartReminderPump),
)

// NewDispatchers selects the broker-backed dispatcher when an AMQP URL is
// configured, otherwise the log-only fallback.
func NewDispatchers(cfg config.Config, logger *slog.Logger) (commands.EventPublisher, notify.ReminderPublisher) {
	if cfg.AMQP.URL != "" {
		d := notify.NewAMQPDispatcher(cfg.AMQP)
		return d, d
	}
	d := notify.NewLogDispatcher(logger)
	return d, d
}

func StartReminderPump(
	lc fx.Lifecycle,
	pool *pgxpool.Pool,
	publisher notify.ReminderPublisher,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) {
	pump := notify.NewReminderPump(pool, publisher, clk, cfg.AMQP.PumpEvery, logger)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// The fx start context is cancelled once startup completes; the
			// pump outlives it and stops via Stop().
			pump.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			pump.Stop()
			return nil
		},
	})
}
