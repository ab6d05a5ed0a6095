package patient

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase"
)

type DeletePatient struct {
	repo  domain.Repository
	cache usecase.Invalidator
}

func NewDeletePatient(
	repo domain.Repository,
	cache usecase.Invalidator,
) *DeletePatient {
	return &DeletePatient{
		repo:  repo,
		cache: cache,
	}
}

// Execute removes the patient and, with it, all of its appointments.
func (uc *DeletePatient) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx)
	return nil
}
