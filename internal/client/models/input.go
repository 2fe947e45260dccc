package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/supportportal/internal/common"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the register request body. The backend generates the
// password and mails it to Email.
type Registration struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// Validate checks v against its struct tags. Failures wrap
// common.ErrInvalidInput.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidInput, describe(err))
	}
	return nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return fmt.Sprintf("%s must be a valid %s", fe.Field(), fe.Tag())
}

// ValidateVar checks a single value against tag, naming it field in the
// resulting message.
func ValidateVar(value any, tag, field string) error {
	if err := validate.Var(value, tag); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok || len(verrs) == 0 {
			return fmt.Errorf("%w: %s", common.ErrInvalidInput, err)
		}
		if verrs[0].Tag() == "required" {
			return fmt.Errorf("%w: %s is required", common.ErrInvalidInput, field)
		}
		return fmt.Errorf("%w: %s must be a valid %s", common.ErrInvalidInput, field, verrs[0].Tag())
	}
	return nil
}
