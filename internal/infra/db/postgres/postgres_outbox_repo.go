package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Antonio1491/parksys-sub000/internal/domain"
	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/repository"
)

var _ repository.OutboxRepository = (*outboxRepo)(nil)

type outboxRepo struct{ pool *pgxpool.Pool }

func NewOutboxRepo(pool *pgxpool.Pool) *outboxRepo {
	return &outboxRepo{pool: pool}
}

func (r *outboxRepo) Save(ctx context.Context, tx repository.Tx, e *model.EmailOutboxEntry) error {
	const q = `
INSERT INTO email_outbox (id, recipient, template_id, variables, status, attempts, last_error, created_at, sent_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9);`

	_, err := execSQL(ctx, r.pool, tx, q,
		e.ID, e.Recipient, e.TemplateID, e.Variables, e.Status, e.Attempts, e.LastError, e.CreatedAt, e.SentAt,
	)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *outboxRepo) ListPending(ctx context.Context, tx repository.Tx, limit, maxAttempts int) ([]*model.EmailOutboxEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	// ULID ids sort by creation time, so ORDER BY id drains oldest first.
	const q = `
SELECT id, recipient, template_id, variables, status, attempts, last_error, created_at, sent_at
FROM email_outbox
WHERE status='pending' AND attempts < $1
ORDER BY id ASC
LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, maxAttempts, limit)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.EmailOutboxEntry
	for rows.Next() {
		e := &model.EmailOutboxEntry{}
		if err := rows.Scan(&e.ID, &e.Recipient, &e.TemplateID, &e.Variables, &e.Status, &e.Attempts, &e.LastError, &e.CreatedAt, &e.SentAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, domain.ErrNotFound
			}
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *outboxRepo) MarkSent(ctx context.Context, tx repository.Tx, id string) error {
	const q = `UPDATE email_outbox SET status='sent', sent_at=NOW() WHERE id=$1;`
	_, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *outboxRepo) MarkFailed(ctx context.Context, tx repository.Tx, id, lastError string, maxAttempts int) error {
	const q = `
UPDATE email_outbox
   SET attempts = attempts + 1,
       last_error = $2,
       status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END
 WHERE id = $1;`
	_, err := execSQL(ctx, r.pool, tx, q, id, lastError, maxAttempts)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}
