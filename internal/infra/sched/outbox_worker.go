package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Antonio1491/parksys-sub000/internal/usecase"
)

// OutboxWorker periodically drains the email outbox. Delivery failures are
// recorded per entry and retried on later ticks; they never reach the
// registration flow that produced the entries.
type OutboxWorker struct {
	interval  time.Duration
	batchSize int
	outboxUC  usecase.OutboxUseCase
	log       *zerolog.Logger
}

func NewOutboxWorker(interval time.Duration, batchSize int, outboxUC usecase.OutboxUseCase, logger *zerolog.Logger) *OutboxWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	compLog := logger.With().Str("component", "OutboxWorker").Logger()
	return &OutboxWorker{
		interval:  interval,
		batchSize: batchSize,
		outboxUC:  outboxUC,
		log:       &compLog,
	}
}

func (w *OutboxWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting outbox worker")
	// Drain once on startup, then on every tick
	w.drain(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping outbox worker")
			return ctx.Err()
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *OutboxWorker) drain(ctx context.Context) {
	sent, err := w.outboxUC.DispatchPending(ctx, w.batchSize)
	if err != nil {
		w.log.Error().Err(err).Msg("outbox drain failed")
	}
	if sent > 0 {
		w.log.Info().Int("count", sent).Msg("confirmation emails dispatched")
	}
}
