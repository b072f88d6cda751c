package repository

import (
	"context"

	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
)

type OutboxRepository interface {
	Save(ctx context.Context, tx Tx, e *model.EmailOutboxEntry) error
	// ListPending returns pending entries with fewer than maxAttempts
	// delivery attempts, oldest first.
	ListPending(ctx context.Context, tx Tx, limit, maxAttempts int) ([]*model.EmailOutboxEntry, error)
	MarkSent(ctx context.Context, tx Tx, id string) error
	// MarkFailed increments the attempt counter and records the error;
	// entries at or past maxAttempts are parked as failed.
	MarkFailed(ctx context.Context, tx Tx, id, lastError string, maxAttempts int) error
}
