package patient

import (
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/validate"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Input is a submitted patient form. Optional fields are nil when the form
// did not carry them at all.
type Input struct {
	Name           string  `json:"name"`
	Age            *string `json:"age"`
	Gender         *string `json:"gender"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
}

var fieldOrder = []string{"name", "age", "gender", "phone", "address", "medical_history"}

var errAgeFormat = validation.NewError("validation_age_format", "Age must be a whole number")

func (in *Input) validate(requireName bool) error {
	nameRules := []validation.Rule{validation.RuneLength(0, 150).Error("Name must be at most 150 characters")}
	if requireName {
		nameRules = append([]validation.Rule{validation.Required.Error("Name is required")}, nameRules...)
	}

	err := validation.ValidateStruct(in,
		validation.Field(&in.Name, nameRules...),
		validation.Field(&in.Age, validation.By(wholeNumber)),
		validation.Field(&in.Gender, validation.RuneLength(0, 20).Error("Gender must be at most 20 characters")),
		validation.Field(&in.Phone, validation.RuneLength(0, 30).Error("Phone must be at most 30 characters")),
		validation.Field(&in.Address, validation.RuneLength(0, 250).Error("Address must be at most 250 characters")),
	)
	return validate.Form(err, fieldOrder...)
}

func wholeNumber(value interface{}) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, _ := v.(string)
	if _, err := parseAge(&s); err != nil {
		return err
	}
	return nil
}

func parseAge(raw *string) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(s)
	if err != nil || age < 0 {
		return nil, errAgeFormat
	}
	return &age, nil
}

// New builds a patient from a create form. The name is mandatory.
func New(in Input) (*models.Patient, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(true); err != nil {
		return nil, err
	}

	age, err := parseAge(in.Age)
	if err != nil {
		return nil, httperr.ErrValidation(err.Error())
	}

	return &models.Patient{
		Name:           in.Name,
		Age:            age,
		Gender:         in.Gender,
		Phone:          in.Phone,
		Address:        in.Address,
		MedicalHistory: in.MedicalHistory,
	}, nil
}

// ApplyUpdate overwrites p with an edit form. A blank name keeps the current
// one; every other field takes the submitted value, blank included.
func ApplyUpdate(p *models.Patient, in Input) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.validate(false); err != nil {
		return err
	}

	age, err := parseAge(in.Age)
	if err != nil {
		return httperr.ErrValidation(err.Error())
	}

	if in.Name != "" {
		p.Name = in.Name
	}
	p.Age = age
	p.Gender = in.Gender
	p.Phone = in.Phone
	p.Address = in.Address
	p.MedicalHistory = in.MedicalHistory
	return nil
}
