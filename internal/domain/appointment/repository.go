package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Repository interface {
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id uint) error

	// ListAppointments returns every appointment, latest appt_time first,
	// with its patient preloaded.
	ListAppointments(ctx context.Context) ([]models.Appointment, error)

	// ListEarliest returns up to limit appointments by ascending appt_time.
	ListEarliest(ctx context.Context, limit int) ([]models.Appointment, error)

	CountAppointments(ctx context.Context) (int64, error)
}
