package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ISOLayout is the timestamp format of every API record.
const ISOLayout = time.RFC3339

type PatientRecordDTO struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
	CreatedAt      string  `json:"created_at"`
}

func PatientRecords(patients []models.Patient) []PatientRecordDTO {
	out := make([]PatientRecordDTO, 0, len(patients))
	for _, p := range patients {
		out = append(out, PatientRecordDTO{
			ID:             p.ID,
			Name:           p.Name,
			Age:            p.Age,
			Gender:         p.Gender,
			Phone:          p.Phone,
			Address:        p.Address,
			MedicalHistory: p.MedicalHistory,
			CreatedAt:      p.CreatedAt.UTC().Format(ISOLayout),
		})
	}
	return out
}
