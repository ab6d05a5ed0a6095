package appointment

import (
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/validate"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	MsgRequired       = "Patient, doctor and appointment time are required"
	MsgInvalidPatient = "Select a valid patient"
	MsgInvalidTime    = "Invalid appointment time"
)

// Input is a submitted appointment form.
type Input struct {
	PatientID string  `json:"patient_id"`
	Doctor    string  `json:"doctor"`
	ApptTime  string  `json:"appt_time"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

var fieldOrder = []string{"patient_id", "doctor", "appt_time", "status", "notes"}

func (in *Input) validate() error {
	required := validation.Required.Error(MsgRequired)

	err := validation.ValidateStruct(in,
		validation.Field(&in.PatientID, required, validation.By(positiveID)),
		validation.Field(&in.Doctor, required, validation.RuneLength(0, 120).Error("Doctor must be at most 120 characters")),
		validation.Field(&in.ApptTime, required),
		validation.Field(&in.Status, validation.RuneLength(0, 20).Error("Status must be at most 20 characters")),
	)
	return validate.Form(err, fieldOrder...)
}

var errPatientID = validation.NewError("validation_patient_id", MsgInvalidPatient)

func positiveID(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := parseID(s); err != nil {
		return err
	}
	return nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || id == 0 {
		return 0, errPatientID
	}
	return uint(id), nil
}

// New builds an appointment from a create form, reading the time in loc.
// It does not check that the patient exists.
func New(in Input, loc *time.Location) (*models.Appointment, error) {
	in.PatientID = strings.TrimSpace(in.PatientID)
	in.Doctor = strings.TrimSpace(in.Doctor)
	in.ApptTime = strings.TrimSpace(in.ApptTime)

	if err := in.validate(); err != nil {
		return nil, err
	}

	patientID, err := parseID(in.PatientID)
	if err != nil {
		return nil, httperr.ErrValidation(MsgInvalidPatient)
	}

	at, err := ParseTime(in.ApptTime, loc)
	if err != nil {
		return nil, httperr.ErrValidation(MsgInvalidTime)
	}

	status := string(InitialStatus())
	if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
		status = strings.TrimSpace(*in.Status)
	}

	return &models.Appointment{
		PatientID: patientID,
		Doctor:    in.Doctor,
		ApptTime:  at,
		Status:    status,
		Notes:     in.Notes,
	}, nil
}
