package repository

import (
	"context"
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func seedPatient(t *testing.T, repo *PatientGormRepository, name string) *models.Patient {
	t.Helper()
	p := &models.Patient{Name: name}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create patient %q: %v", name, err)
	}
	return p
}

func seedAppointment(t *testing.T, repo *AppointmentGormRepository, patientID uint, at time.Time) *models.Appointment {
	t.Helper()
	ap := &models.Appointment{PatientID: patientID, Doctor: "Dr. Lee", ApptTime: at, Status: "Scheduled"}
	if err := repo.CreateAppointment(context.Background(), ap); err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	return ap
}

func TestPatientListSearchAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientGormRepository(dbtest.Open(t))

	jane := seedPatient(t, repo, "Jane Doe")
	seedPatient(t, repo, "John Smith")
	benjamin := seedPatient(t, repo, "Benjamin Janssen")

	all, err := repo.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != benjamin.ID || all[2].ID != jane.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}

	found, err := repo.List(ctx, "  JAN ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("search matched %d patients, want 2", len(found))
	}

	if !found[0].CreatedAt.After(time.Time{}) {
		t.Fatal("created_at not set")
	}
}

func TestPatientSearchWildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientGormRepository(dbtest.Open(t))

	seedPatient(t, repo, "Jane Doe")
	seedPatient(t, repo, "John Smith")
	odd := seedPatient(t, repo, `Ana 100%_Silva\`)

	cases := []struct {
		query string
		want  int
	}{
		{"%", 1},
		{"_", 1},
		{`\`, 1},
		{"100%_", 1},
		{"j%n", 0},
		{"j_hn", 0},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got, err := repo.List(ctx, tc.query)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("q=%q matched %d patients, want %d", tc.query, len(got), tc.want)
			}
			if tc.want == 1 && got[0].ID != odd.ID {
				t.Fatalf("q=%q matched %q", tc.query, got[0].Name)
			}
		})
	}
}

func TestPatientUpdateWritesNulls(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientGormRepository(dbtest.Open(t))

	phone := "555-0101"
	age := 30
	p := &models.Patient{Name: "Jane Doe", Phone: &phone, Age: &age}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatal(err)
	}
	created := p.CreatedAt

	p.Name = "Janet Doe"
	p.Phone = nil
	p.Age = nil
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Janet Doe" || got.Phone != nil || got.Age != nil {
		t.Fatalf("update not persisted: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at changed from %v to %v", created, got.CreatedAt)
	}
}

func TestPatientDeleteCascades(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	patients := NewPatientGormRepository(gdb)
	appts := NewAppointmentGormRepository(gdb)

	jane := seedPatient(t, patients, "Jane Doe")
	john := seedPatient(t, patients, "John Smith")
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	seedAppointment(t, appts, jane.ID, base)
	seedAppointment(t, appts, jane.ID, base.Add(time.Hour))
	kept := seedAppointment(t, appts, john.ID, base)

	if err := patients.Delete(ctx, jane.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	left, err := appts.ListAppointments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 || left[0].ID != kept.ID {
		t.Fatalf("expected only John's appointment to remain, got %+v", left)
	}

	if _, err := patients.GetByID(ctx, jane.ID); !httperr.IsBusiness(err, httperr.CodePatientNotFound) {
		t.Fatalf("deleted patient still readable: %v", err)
	}
}

func TestPatientDeleteMissing(t *testing.T) {
	repo := NewPatientGormRepository(dbtest.Open(t))
	seedPatient(t, repo, "Jane Doe")

	err := repo.Delete(context.Background(), 999)
	if !httperr.IsBusiness(err, httperr.CodePatientNotFound) {
		t.Fatalf("err = %v", err)
	}

	n, _ := repo.Count(context.Background())
	if n != 1 {
		t.Fatalf("count = %d", n)
	}
}

func TestAppointmentOrdering(t *testing.T) {
	ctx := context.Background()
	gdb := dbtest.Open(t)
	patients := NewPatientGormRepository(gdb)
	appts := NewAppointmentGormRepository(gdb)

	p := seedPatient(t, patients, "Jane Doe")
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for _, offset := range []int{3, 1, 5, 2, 4, 6} {
		seedAppointment(t, appts, p.ID, base.Add(time.Duration(offset)*time.Hour))
	}

	all, err := appts.ListAppointments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(all); i++ {
		if all[i].ApptTime.After(all[i-1].ApptTime) {
			t.Fatalf("list not descending at %d", i)
		}
	}
	if all[0].Patient == nil || all[0].Patient.Name != "Jane Doe" {
		t.Fatal("patient not preloaded")
	}

	earliest, err := appts.ListEarliest(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(earliest) != 5 || !earliest[0].ApptTime.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected earliest list %+v", earliest)
	}

	n, err := appts.CountAppointments(ctx)
	if err != nil || n != 6 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestAppointmentDeleteMissing(t *testing.T) {
	repo := NewAppointmentGormRepository(dbtest.Open(t))

	err := repo.DeleteAppointment(context.Background(), 12)
	if !httperr.IsBusiness(err, httperr.CodeAppointmentNotFound) {
		t.Fatalf("err = %v", err)
	}
}
