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

var _ repository.ActivityRepository = (*activityRepo)(nil)

type activityRepo struct{ pool *pgxpool.Pool }

func NewActivityRepo(pool *pgxpool.Pool) *activityRepo {
	return &activityRepo{pool: pool}
}

const activityColumns = `id, title, park_name, location, starts_at,
  base_price, is_free, is_price_random, min_price, max_price,
  discount_seniors, discount_students, discount_families, discount_disability, discount_early_bird,
  early_bird_deadline, requires_approval, created_at, updated_at`

func (r *activityRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Activity, error) {
	q := `SELECT ` + activityColumns + ` FROM activities WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}

	a := &model.Activity{}
	err = row.Scan(
		&a.ID, &a.Title, &a.ParkName, &a.Location, &a.StartsAt,
		&a.Pricing.BasePrice, &a.Pricing.IsFree, &a.Pricing.IsPriceRandom, &a.Pricing.MinPrice, &a.Pricing.MaxPrice,
		&a.Pricing.DiscountSeniors, &a.Pricing.DiscountStudents, &a.Pricing.DiscountFamilies, &a.Pricing.DiscountDisability, &a.Pricing.DiscountEarlyBird,
		&a.Pricing.EarlyBirdDeadline, &a.Pricing.RequiresApproval, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return a, nil
}

func (r *activityRepo) Save(ctx context.Context, tx repository.Tx, a *model.Activity) error {
	const q = `
INSERT INTO activities (
  id, title, park_name, location, starts_at,
  base_price, is_free, is_price_random, min_price, max_price,
  discount_seniors, discount_students, discount_families, discount_disability, discount_early_bird,
  early_bird_deadline, requires_approval, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19
) ON CONFLICT (id) DO UPDATE SET
  title=$2, park_name=$3, location=$4, starts_at=$5,
  base_price=$6, is_free=$7, is_price_random=$8, min_price=$9, max_price=$10,
  discount_seniors=$11, discount_students=$12, discount_families=$13, discount_disability=$14, discount_early_bird=$15,
  early_bird_deadline=$16, requires_approval=$17, updated_at=$19;`

	_, err := execSQL(ctx, r.pool, tx, q,
		a.ID, a.Title, a.ParkName, a.Location, a.StartsAt,
		a.Pricing.BasePrice, a.Pricing.IsFree, a.Pricing.IsPriceRandom, a.Pricing.MinPrice, a.Pricing.MaxPrice,
		a.Pricing.DiscountSeniors, a.Pricing.DiscountStudents, a.Pricing.DiscountFamilies, a.Pricing.DiscountDisability, a.Pricing.DiscountEarlyBird,
		a.Pricing.EarlyBirdDeadline, a.Pricing.RequiresApproval, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}
