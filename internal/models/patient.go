package models

import "time"

type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string  `gorm:"size:150;not null;index" json:"name"`
	Age            *int    `json:"age"`
	Gender         *string `gorm:"size:20" json:"gender"`
	Phone          *string `gorm:"size:30" json:"phone"`
	Address        *string `gorm:"size:250" json:"address"`
	MedicalHistory *string `gorm:"type:text" json:"medical_history"`

	// Deleting a patient removes its appointments.
	Appointments []Appointment `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime;<-:create" json:"created_at"`
}

func (Patient) TableName() string {
	return "patients"
}
