package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint     `gorm:"not null;index" json:"patient_id"`
	Patient   *Patient `json:"-"`

	Doctor   string    `gorm:"size:120;not null" json:"doctor"`
	ApptTime time.Time `gorm:"not null;index" json:"appt_time"`

	Status string  `gorm:"size:20;default:'Scheduled'" json:"status"`
	Notes  *string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime;<-:create" json:"created_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}
