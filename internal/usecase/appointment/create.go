package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	patientDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	patients patientDomain.Repository
	clock    *timezone.Clock
	cache    usecase.Invalidator
}

func NewCreateAppointment(
	repo domain.Repository,
	patients patientDomain.Repository,
	clock *timezone.Clock,
	cache usecase.Invalidator,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		patients: patients,
		clock:    clock,
		cache:    cache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in domain.Input,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Form rules + time parsing in clinic time
	// --------------------------------------------------
	ap, err := domain.New(in, uc.clock.Location())
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. The patient must be live
	// --------------------------------------------------
	ok, err := uc.patients.Exists(ctx, ap.PatientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrValidation(domain.MsgInvalidPatient)
	}

	// --------------------------------------------------
	// 3. Persist
	// --------------------------------------------------
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	return ap, nil
}
