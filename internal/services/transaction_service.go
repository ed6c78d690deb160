package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"findash/internal/core"
	"findash/internal/store"
)

// EventPublisher fans a recorded transaction out to interested consumers.
type EventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, id string, kind core.Kind) error
}

// TransactionService records transactions and publishes events about them.
// Publishing is best-effort: the record is authoritative once stored.
type TransactionService struct {
	records store.TransactionStore
	events  EventPublisher
	clock   func() time.Time
}

func NewTransactionService(records store.TransactionStore, events EventPublisher) *TransactionService {
	return &TransactionService{
		records: records,
		events:  events,
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// Record stores the transaction and publishes a transaction-recorded event.
// The amount is normalized to its absolute value and a missing date defaults
// to the time of recording.
func (s *TransactionService) Record(ctx context.Context, t core.Transaction) (string, error) {
	t.Amount = t.Amount.Abs()
	if t.Date.IsZero() {
		t.Date = s.clock()
	}
	if err := t.Validate(); err != nil {
		return "", fmt.Errorf("validate transaction: %w", err)
	}

	id, err := s.records.InsertTransaction(ctx, t)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishTransactionRecorded(ctx, id, t.Kind); err != nil {
			// Don't fail the request, the transaction is saved
			slog.ErrorContext(ctx, "Failed to publish transaction event",
				"id", id, "error", err)
		}
	}

	return id, nil
}
