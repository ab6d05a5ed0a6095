package patient

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase"
)

type UpdatePatient struct {
	repo  domain.Repository
	cache usecase.Invalidator
}

func NewUpdatePatient(
	repo domain.Repository,
	cache usecase.Invalidator,
) *UpdatePatient {
	return &UpdatePatient{
		repo:  repo,
		cache: cache,
	}
}

func (uc *UpdatePatient) Execute(
	ctx context.Context,
	id uint,
	in domain.Input,
) (*models.Patient, error) {

	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.ApplyUpdate(p, in); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return p, nil
}
