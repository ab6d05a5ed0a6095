package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucPatient "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/patient"
)

// APIHandler serves the read-only JSON dumps.
type APIHandler struct {
	patients     *ucPatient.ListPatients
	appointments *ucAppointment.ListAppointments
	clock        *timezone.Clock
	cache        *cache.Cache
}

func NewAPIHandler(
	patients *ucPatient.ListPatients,
	appointments *ucAppointment.ListAppointments,
	clock *timezone.Clock,
	c *cache.Cache,
) *APIHandler {
	return &APIHandler{
		patients:     patients,
		appointments: appointments,
		clock:        clock,
		cache:        c,
	}
}

func (h *APIHandler) Patients(c *gin.Context) {
	h.serve(c, cache.KeyPatients, "failed_to_list_patients", h.patientRecords)
}

func (h *APIHandler) Appointments(c *gin.Context) {
	h.serve(c, cache.KeyAppointments, "failed_to_list_appointments", h.appointmentRecords)
}

func (h *APIHandler) patientRecords(ctx context.Context) (any, error) {
	patients, err := h.patients.Execute(ctx, "")
	if err != nil {
		return nil, err
	}
	return dto.PatientRecords(patients), nil
}

func (h *APIHandler) appointmentRecords(ctx context.Context) (any, error) {
	apps, err := h.appointments.Execute(ctx)
	if err != nil {
		return nil, err
	}
	return dto.AppointmentRecords(apps, h.clock.Location()), nil
}

func (h *APIHandler) serve(
	c *gin.Context,
	key, errCode string,
	load func(context.Context) (any, error),
) {
	ctx := c.Request.Context()

	if payload, ok := h.cache.Get(ctx, key); ok {
		httpresp.Raw(c, payload)
		return
	}

	records, err := load(ctx)
	if err != nil {
		log.Printf("api %s: %v", key, err)
		httperr.Internal(c, errCode, "could not read records")
		return
	}

	payload, err := json.Marshal(records)
	if err != nil {
		log.Printf("api %s: %v", key, err)
		httperr.Internal(c, errCode, "could not encode records")
		return
	}

	h.cache.Set(ctx, key, payload)
	httpresp.Raw(c, payload)
}
