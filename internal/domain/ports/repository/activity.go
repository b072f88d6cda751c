package repository

import (
	"context"

	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
)

// ActivityRepository reads the activity catalog. Pricing configuration is
// managed by the wider platform; this service treats it as read-mostly
// (Save exists for admin imports and cache invalidation).
type ActivityRepository interface {
	FindByID(ctx context.Context, tx Tx, id string) (*model.Activity, error)
	Save(ctx context.Context, tx Tx, a *model.Activity) error
}
