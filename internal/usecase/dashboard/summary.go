package dashboard

import (
	"context"

	appointmentDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	patientDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const UpcomingLimit = 5

type Summary struct {
	PatientCount     int64
	AppointmentCount int64
	Upcoming         []models.Appointment
}

type GetSummary struct {
	patients     patientDomain.Repository
	appointments appointmentDomain.Repository
}

func NewGetSummary(
	patients patientDomain.Repository,
	appointments appointmentDomain.Repository,
) *GetSummary {
	return &GetSummary{
		patients:     patients,
		appointments: appointments,
	}
}

// Execute counts both tables and picks the appointments with the earliest
// appt_time, past ones included.
func (uc *GetSummary) Execute(ctx context.Context) (*Summary, error) {
	patientCount, err := uc.patients.Count(ctx)
	if err != nil {
		return nil, err
	}

	appointmentCount, err := uc.appointments.CountAppointments(ctx)
	if err != nil {
		return nil, err
	}

	upcoming, err := uc.appointments.ListEarliest(ctx, UpcomingLimit)
	if err != nil {
		return nil, err
	}

	return &Summary{
		PatientCount:     patientCount,
		AppointmentCount: appointmentCount,
		Upcoming:         upcoming,
	}, nil
}
