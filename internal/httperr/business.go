package httperr

import "errors"

const (
	CodePatientNotFound     = "patient_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
	CodeValidationFailed    = "validation_failed"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsNotFound reports whether err names a missing patient or appointment.
func IsNotFound(err error) bool {
	return IsBusiness(err, CodePatientNotFound) || IsBusiness(err, CodeAppointmentNotFound)
}

// ValidationError is a rejected form submission; Message is shown to the user.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return CodeValidationFailed + ": " + e.Message
}

func ErrValidation(message string) error {
	return ValidationError{Message: message}
}

func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
