package appointment

import (
	"context"
	"strconv"
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) Invalidate(context.Context) { c.calls++ }

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	patients := repository.NewPatientGormRepository(gdb)
	appts := repository.NewAppointmentGormRepository(gdb)
	inv := &countingInvalidator{}

	jane := &models.Patient{Name: "Jane Doe"}
	if err := patients.Create(ctx, jane); err != nil {
		t.Fatal(err)
	}

	uc := NewCreateAppointment(appts, patients, timezone.NewClock("UTC"), inv)

	t.Run("unknown patient is a validation failure", func(t *testing.T) {
		_, err := uc.Execute(ctx, domain.Input{PatientID: "999", Doctor: "Dr. Lee", ApptTime: "2024-05-01 10:00"})
		ve, ok := httperr.AsValidation(err)
		if !ok || ve.Message != domain.MsgInvalidPatient {
			t.Fatalf("err = %v", err)
		}
		if inv.calls != 0 {
			t.Fatal("cache invalidated without a write")
		}
	})

	t.Run("valid form is stored", func(t *testing.T) {
		ap, err := uc.Execute(ctx, domain.Input{PatientID: strconv.FormatUint(uint64(jane.ID), 10), Doctor: "Dr. Lee", ApptTime: "2024-05-01 10:00"})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if ap.ID == 0 || ap.Status != "Scheduled" {
			t.Fatalf("unexpected appointment %+v", ap)
		}
		if inv.calls != 1 {
			t.Fatalf("invalidations = %d", inv.calls)
		}
	})

	n, _ := appts.CountAppointments(ctx)
	if n != 1 {
		t.Fatalf("count = %d", n)
	}
}
