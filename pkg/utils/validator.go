package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	personNamePattern   = regexp.MustCompile(`^[a-zA-Z]+$`)
	emailAddressPattern = regexp.MustCompile(`^[a-zA-Z0-9.+_-]+@[a-zA-Z0-9._-]+\.[a-zA-Z]+$`)
)

type Validator struct {
	validate *validator.Validate
}

// Check pairs a single value with the rule it must satisfy and the message
// reported when it does not. Other is only consulted by cross-field tags
// such as eqfield.
type Check struct {
	Value   interface{}
	Other   interface{}
	Tag     string
	Message string
}

func NewValidator() *Validator {
	v := validator.New()

	// Custom validations
	v.RegisterValidation("person_name", validatePersonName)
	v.RegisterValidation("email_address", validateEmailAddress)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// Collect runs every check in order and returns the messages of the ones
// that failed. A nil result means all checks passed.
func (v *Validator) Collect(checks ...Check) []string {
	var messages []string
	for _, check := range checks {
		var err error
		if check.Other != nil {
			err = v.validate.VarWithValue(check.Value, check.Other, check.Tag)
		} else {
			err = v.validate.Var(check.Value, check.Tag)
		}
		if err != nil {
			messages = append(messages, check.Message)
		}
	}
	return messages
}

// Letters only, ASCII.
func validatePersonName(fl validator.FieldLevel) bool {
	return personNamePattern.MatchString(fl.Field().String())
}

func validateEmailAddress(fl validator.FieldLevel) bool {
	return emailAddressPattern.MatchString(fl.Field().String())
}
