// Package validate turns ozzo-validation results into the single message a
// form shows back to the user.
package validate

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// Form converts err into an httperr.ValidationError carrying the message of
// the first failing field in order. Non-validation errors pass through.
func Form(err error, order ...string) error {
	if err == nil {
		return nil
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}

	for _, field := range order {
		if fe, ok := errs[field]; ok && fe != nil {
			return httperr.ErrValidation(fe.Error())
		}
	}
	for _, fe := range errs {
		if fe != nil {
			return httperr.ErrValidation(fe.Error())
		}
	}
	return nil
}
