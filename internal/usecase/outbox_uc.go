package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/adapter"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/repository"
	"github.com/Antonio1491/parksys-sub000/internal/infra/metrics"
)

// Compile-time check
var _ OutboxUseCase = (*outboxUC)(nil)

type OutboxUseCase interface {
	// DispatchPending drains up to batchSize pending outbox entries through
	// the mail queue and returns how many were delivered. Per-entry failures
	// are recorded and never abort the batch.
	DispatchPending(ctx context.Context, batchSize int) (int, error)
}

type outboxUC struct {
	outbox      repository.OutboxRepository
	queue       adapter.EmailQueue
	maxAttempts int
	log         *zerolog.Logger
}

func NewOutboxUseCase(outbox repository.OutboxRepository, queue adapter.EmailQueue, maxAttempts int, logger *zerolog.Logger) *outboxUC {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &outboxUC{outbox: outbox, queue: queue, maxAttempts: maxAttempts, log: logger}
}

func (u *outboxUC) DispatchPending(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 50
	}
	entries, err := u.outbox.ListPending(ctx, nil, batchSize, u.maxAttempts)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, e := range entries {
		queued, qerr := u.queue.Enqueue(ctx, e.Recipient, e.TemplateID, e.Variables)
		if qerr != nil || !queued {
			msg := "queue rejected message"
			if qerr != nil {
				msg = qerr.Error()
			}
			u.log.Warn().Str("outbox_id", e.ID).Str("template", e.TemplateID).Err(qerr).Msg("email dispatch failed")
			metrics.IncOutboxDispatch("failed")
			if merr := u.outbox.MarkFailed(ctx, nil, e.ID, msg, u.maxAttempts); merr != nil {
				u.log.Error().Err(merr).Str("outbox_id", e.ID).Msg("could not record dispatch failure")
			}
			continue
		}
		if merr := u.outbox.MarkSent(ctx, nil, e.ID); merr != nil {
			u.log.Error().Err(merr).Str("outbox_id", e.ID).Msg("could not mark outbox entry sent")
			continue
		}
		metrics.IncOutboxDispatch("sent")
		sent++
	}
	return sent, nil
}
