package patient

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Patient) error
	GetByID(ctx context.Context, id uint) (*models.Patient, error)
	Update(ctx context.Context, p *models.Patient) error

	// Delete removes the patient together with its appointments.
	Delete(ctx context.Context, id uint) error

	// List returns patients newest first, filtered by a case-insensitive
	// name substring when query is not empty.
	List(ctx context.Context, query string) ([]models.Patient, error)
	ListByName(ctx context.Context) ([]models.Patient, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}
