package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentRecordDTO struct {
	ID          uint    `json:"id"`
	PatientID   uint    `json:"patient_id"`
	PatientName *string `json:"patient_name"`
	Doctor      string  `json:"doctor"`
	ApptTime    string  `json:"appt_time"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"created_at"`
}

// AppointmentRecords flattens appointments, copying the patient name in and
// rendering appt_time in loc.
func AppointmentRecords(apps []models.Appointment, loc *time.Location) []AppointmentRecordDTO {
	out := make([]AppointmentRecordDTO, 0, len(apps))
	for _, ap := range apps {
		var name *string
		if ap.Patient != nil {
			n := ap.Patient.Name
			name = &n
		}

		out = append(out, AppointmentRecordDTO{
			ID:          ap.ID,
			PatientID:   ap.PatientID,
			PatientName: name,
			Doctor:      ap.Doctor,
			ApptTime:    ap.ApptTime.In(loc).Format(ISOLayout),
			Status:      ap.Status,
			Notes:       ap.Notes,
			CreatedAt:   ap.CreatedAt.UTC().Format(ISOLayout),
		})
	}
	return out
}
