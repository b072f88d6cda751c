package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Antonio1491/parksys-sub000/internal/domain"
	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/repository"
)

var _ repository.RegistrationRepository = (*registrationRepo)(nil)

type registrationRepo struct{ pool *pgxpool.Pool }

func NewRegistrationRepo(pool *pgxpool.Pool) *registrationRepo {
	return &registrationRepo{pool: pool}
}

const registrationColumns = `id, activity_id, participant_name, participant_email, participant_phone,
  status, payment_status, payment_intent_id, customer_id, paid_amount, currency, payment_date,
  applied_discount_type, applied_discount_percentage, original_amount, discount_amount, created_at`

// uniqueViolation is the SQLSTATE for a duplicate key; the unique index on
// payment_intent_id is the idempotency boundary for confirmations.
const uniqueViolation = "23505"

func (r *registrationRepo) Save(ctx context.Context, tx repository.Tx, reg *model.Registration) error {
	const q = `
INSERT INTO activity_registrations (
  id, activity_id, participant_name, participant_email, participant_phone,
  status, payment_status, payment_intent_id, customer_id, paid_amount, currency, payment_date,
  applied_discount_type, applied_discount_percentage, original_amount, discount_amount, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17
);`

	_, err := execSQL(ctx, r.pool, tx, q,
		reg.ID, reg.ActivityID, reg.ParticipantName, reg.ParticipantEmail, reg.ParticipantPhone,
		reg.Status, reg.PaymentStatus, reg.PaymentIntentID, reg.CustomerID, reg.PaidAmount, reg.Currency, reg.PaymentDate,
		reg.AppliedDiscountType, reg.AppliedDiscountPercentage, reg.OriginalAmount, reg.DiscountAmount, reg.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateRegistration
		}
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *registrationRepo) FindByIntentID(ctx context.Context, tx repository.Tx, intentID string) (*model.Registration, error) {
	q := `SELECT ` + registrationColumns + ` FROM activity_registrations WHERE payment_intent_id=$1 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, intentID)
	if err != nil {
		return nil, err
	}
	return scanRegistration(row)
}

func (r *registrationRepo) ListByActivity(ctx context.Context, tx repository.Tx, activityID string, limit, offset int) ([]*model.Registration, error) {
	if limit <= 0 {
		limit = 50
	}
	q := `SELECT ` + registrationColumns + ` FROM activity_registrations WHERE activity_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := queryRows(ctx, r.pool, tx, q, activityID, limit, offset)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return nil, err
		}
		return nil, domain.ErrOperationFailed
	}
	defer rows.Close()

	var out []*model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func scanRegistration(row pgx.Row) (*model.Registration, error) {
	reg := &model.Registration{}
	err := row.Scan(
		&reg.ID, &reg.ActivityID, &reg.ParticipantName, &reg.ParticipantEmail, &reg.ParticipantPhone,
		&reg.Status, &reg.PaymentStatus, &reg.PaymentIntentID, &reg.CustomerID, &reg.PaidAmount, &reg.Currency, &reg.PaymentDate,
		&reg.AppliedDiscountType, &reg.AppliedDiscountPercentage, &reg.OriginalAmount, &reg.DiscountAmount, &reg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return reg, nil
}
