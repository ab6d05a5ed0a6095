package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase"
)

type DeleteAppointment struct {
	repo  domain.Repository
	cache usecase.Invalidator
}

func NewDeleteAppointment(
	repo domain.Repository,
	cache usecase.Invalidator,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		cache: cache,
	}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx)
	return nil
}
