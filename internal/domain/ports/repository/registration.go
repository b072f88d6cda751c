package repository

import (
	"context"

	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
)

type RegistrationRepository interface {
	// Save inserts the registration. A second insert for the same payment
	// intent must fail with domain.ErrDuplicateRegistration (unique index).
	Save(ctx context.Context, tx Tx, r *model.Registration) error
	FindByIntentID(ctx context.Context, tx Tx, intentID string) (*model.Registration, error)
	ListByActivity(ctx context.Context, tx Tx, activityID string, limit, offset int) ([]*model.Registration, error)
}
