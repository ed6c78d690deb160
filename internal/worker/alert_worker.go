// Package worker bridges derived notifications onto the message bus.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"findash/internal/amqp"
	"findash/internal/core"
	"findash/internal/services"
)

// AlertPublisher publishes a derived notification downstream.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, n core.Notification) error
}

// AlertWorker re-derives notifications whenever a transaction event arrives
// (and periodically as a catch-up) and publishes the computed ones. It never
// writes to the record store.
type AlertWorker struct {
	notifier  *services.NotificationService
	publisher AlertPublisher
}

func NewAlertWorker(notifier *services.NotificationService, publisher AlertPublisher) *AlertWorker {
	return &AlertWorker{
		notifier:  notifier,
		publisher: publisher,
	}
}

// HandleTransactionEvent processes one transaction event from the bus.
func (w *AlertWorker) HandleTransactionEvent(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	slog.InfoContext(ctx, "Processing transaction event",
		"id", msg.ID,
		"kind", msg.Kind)
	return w.PublishCurrentAlerts(ctx)
}

// PublishCurrentAlerts derives the current computed notifications and
// publishes each one.
func (w *AlertWorker) PublishCurrentAlerts(ctx context.Context) error {
	alerts, err := w.notifier.Computed(ctx)
	if err != nil {
		return fmt.Errorf("derive notifications: %w", err)
	}

	for _, a := range alerts {
		if err := w.publisher.PublishAlert(ctx, a); err != nil {
			return fmt.Errorf("publish alert: %w", err)
		}
	}

	slog.InfoContext(ctx, "Published current alerts", "count", len(alerts))
	return nil
}
