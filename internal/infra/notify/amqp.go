package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPDispatcher publishes events to a durable queue. It dials per publish
// and never panics; any error is logged and returned so callers can swallow
// it without interrupting the request flow.
type AMQPDispatcher struct {
	url   string
	queue string
}

func NewAMQPDispatcher(cfg config.AMQPConfig) *AMQPDispatcher {
	return &AMQPDispatcher{url: cfg.URL, queue: cfg.Queue}
}

func (d *AMQPDispatcher) Publish(ctx context.Context, event commands.ReservationEvent) error {
	return d.publishJSON(ctx, event)
}

func (d *AMQPDispatcher) PublishReminder(ctx context.Context, event ReminderDueEvent) error {
	return d.publishJSON(ctx, event)
}

func (d *AMQPDispatcher) publishJSON(ctx context.Context, payload any) error {
	conn, err := amqp.Dial(d.url)
	if err != nil {
		slog.Warn("amqp dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		slog.Warn("amqp channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(d.queue, true, false, false, false, nil); err != nil {
		slog.Warn("amqp queue declare failed", "queue", d.queue, "error", err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", d.queue, false, false, pub); err != nil {
		slog.Warn("amqp publish failed", "queue", d.queue, "error", err)
		return err
	}
	return nil
}
