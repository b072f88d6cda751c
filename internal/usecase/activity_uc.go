package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/repository"
)

// Compile-time check
var _ ActivityUseCase = (*activityUC)(nil)

type ActivityUseCase interface {
	Get(ctx context.Context, id string) (*model.Activity, error)
}

type activityUC struct {
	activities repository.ActivityRepository
	log        *zerolog.Logger
}

func NewActivityUseCase(activities repository.ActivityRepository, logger *zerolog.Logger) *activityUC {
	return &activityUC{activities: activities, log: logger}
}

func (u *activityUC) Get(ctx context.Context, id string) (*model.Activity, error) {
	return u.activities.FindByID(ctx, nil, id)
}
