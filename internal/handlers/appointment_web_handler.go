package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/flash"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucPatient "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/patient"
)

type AppointmentWebHandler struct {
	create   *ucAppointment.CreateAppointment
	remove   *ucAppointment.DeleteAppointment
	list     *ucAppointment.ListAppointments
	patients *ucPatient.ListPatients
	clock    *timezone.Clock
	view     *View
}

func NewAppointmentWebHandler(
	create *ucAppointment.CreateAppointment,
	remove *ucAppointment.DeleteAppointment,
	list *ucAppointment.ListAppointments,
	patients *ucPatient.ListPatients,
	clock *timezone.Clock,
	view *View,
) *AppointmentWebHandler {
	return &AppointmentWebHandler{
		create:   create,
		remove:   remove,
		list:     list,
		patients: patients,
		clock:    clock,
		view:     view,
	}
}

func (h *AppointmentWebHandler) List(c *gin.Context) {
	apps, err := h.list.Execute(c.Request.Context())
	if err != nil {
		h.view.ServerError(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "appointments", "Appointments", gin.H{
		"Appointments": apps,
	})
}

func (h *AppointmentWebHandler) NewForm(c *gin.Context) {
	patients, err := h.patients.ByName(c.Request.Context())
	if err != nil {
		h.view.ServerError(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "appointment_form", "New appointment", gin.H{
		"Patients":    patients,
		"DefaultTime": h.clock.FormDefault(),
		"Statuses":    domain.KnownStatuses,
	})
}

func (h *AppointmentWebHandler) Create(c *gin.Context) {
	in := domain.Input{
		PatientID: c.PostForm("patient_id"),
		Doctor:    c.PostForm("doctor"),
		ApptTime:  c.PostForm("appt_time"),
		Status:    formValue(c, "status"),
		Notes:     formValue(c, "notes"),
	}

	if _, err := h.create.Execute(c.Request.Context(), in); err != nil {
		h.view.Fail(c, err, "/appointments/new")
		return
	}

	h.view.Flash(c, flash.Success, "Appointment created")
	httpresp.Redirect(c, "/appointments")
}

func (h *AppointmentWebHandler) Delete(c *gin.Context) {
	id, ok := h.view.idParam(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		h.view.Fail(c, err, "/appointments")
		return
	}

	h.view.Flash(c, flash.Warning, "Appointment deleted")
	httpresp.Redirect(c, "/appointments")
}
