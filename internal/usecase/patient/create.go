package patient

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase"
)

type CreatePatient struct {
	repo  domain.Repository
	cache usecase.Invalidator
}

func NewCreatePatient(
	repo domain.Repository,
	cache usecase.Invalidator,
) *CreatePatient {
	return &CreatePatient{
		repo:  repo,
		cache: cache,
	}
}

func (uc *CreatePatient) Execute(
	ctx context.Context,
	in domain.Input,
) (*models.Patient, error) {

	p, err := domain.New(in)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return p, nil
}
