package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/patient"
	"github.com/BruksfildServices01/clinic-scheduler/internal/flash"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	ucPatient "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/patient"
)

type PatientWebHandler struct {
	create *ucPatient.CreatePatient
	update *ucPatient.UpdatePatient
	remove *ucPatient.DeletePatient
	list   *ucPatient.ListPatients
	view   *View
}

func NewPatientWebHandler(
	create *ucPatient.CreatePatient,
	update *ucPatient.UpdatePatient,
	remove *ucPatient.DeletePatient,
	list *ucPatient.ListPatients,
	view *View,
) *PatientWebHandler {
	return &PatientWebHandler{
		create: create,
		update: update,
		remove: remove,
		list:   list,
		view:   view,
	}
}

// ======================================================
// LIST / SEARCH
// ======================================================
func (h *PatientWebHandler) List(c *gin.Context) {
	q := c.Query("q")

	patients, err := h.list.Execute(c.Request.Context(), q)
	if err != nil {
		h.view.ServerError(c, err)
		return
	}

	h.view.Render(c, http.StatusOK, "patients", "Patients", gin.H{
		"Patients": patients,
		"Q":        q,
	})
}

// ======================================================
// CREATE
// ======================================================
func (h *PatientWebHandler) NewForm(c *gin.Context) {
	h.view.Render(c, http.StatusOK, "patient_form", "New patient", nil)
}

func (h *PatientWebHandler) Create(c *gin.Context) {
	if _, err := h.create.Execute(c.Request.Context(), patientInput(c)); err != nil {
		h.view.Fail(c, err, "/patients/new")
		return
	}

	h.view.Flash(c, flash.Success, "Patient created")
	httpresp.Redirect(c, "/patients")
}

// ======================================================
// EDIT
// ======================================================
func (h *PatientWebHandler) EditForm(c *gin.Context) {
	id, ok := h.view.idParam(c)
	if !ok {
		return
	}

	p, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		h.view.Fail(c, err, "/patients")
		return
	}

	h.view.Render(c, http.StatusOK, "patient_form", "Edit patient", gin.H{
		"Patient": p,
	})
}

func (h *PatientWebHandler) Update(c *gin.Context) {
	id, ok := h.view.idParam(c)
	if !ok {
		return
	}

	if _, err := h.update.Execute(c.Request.Context(), id, patientInput(c)); err != nil {
		h.view.Fail(c, err, fmt.Sprintf("/patients/%d/edit", id))
		return
	}

	h.view.Flash(c, flash.Success, "Patient updated")
	httpresp.Redirect(c, "/patients")
}

// ======================================================
// DELETE
// ======================================================
func (h *PatientWebHandler) Delete(c *gin.Context) {
	id, ok := h.view.idParam(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		h.view.Fail(c, err, "/patients")
		return
	}

	h.view.Flash(c, flash.Warning, "Patient deleted")
	httpresp.Redirect(c, "/patients")
}

func patientInput(c *gin.Context) domain.Input {
	return domain.Input{
		Name:           c.PostForm("name"),
		Age:            formValue(c, "age"),
		Gender:         formValue(c, "gender"),
		Phone:          formValue(c, "phone"),
		Address:        formValue(c, "address"),
		MedicalHistory: formValue(c, "medical_history"),
	}
}
