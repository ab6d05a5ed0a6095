package patient

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListPatients struct {
	repo domain.Repository
}

func NewListPatients(repo domain.Repository) *ListPatients {
	return &ListPatients{repo: repo}
}

func (uc *ListPatients) Execute(ctx context.Context, query string) ([]models.Patient, error) {
	return uc.repo.List(ctx, query)
}

// ByName is the patient picker on the appointment form.
func (uc *ListPatients) ByName(ctx context.Context) ([]models.Patient, error) {
	return uc.repo.ListByName(ctx)
}

func (uc *ListPatients) Get(ctx context.Context, id uint) (*models.Patient, error) {
	return uc.repo.GetByID(ctx, id)
}
