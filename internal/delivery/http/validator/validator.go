// Package validator adapts go-playground/validator to echo.
package validator

import (
	"strings"

	"routereel/internal/domain/entity"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator with the domain tags registered.
func New() *CustomValidator {
	validate := validator.New()
	_ = validate.RegisterValidation("transportmode", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseTransportMode(fl.Field().String())

		return ok
	})

	return &CustomValidator{validate: validate}
}

// Validate checks i and joins every field failure into one message.
func (v *CustomValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return errors.WithStack(err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		messages = append(messages, FormatValidationError(fieldErr))
	}

	return errors.New(strings.Join(messages, "; "))
}

// FormatValidationError renders one field failure for API clients.
func FormatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min", "gte":
		return err.Field() + " must be at least " + err.Param()
	case "max", "lte":
		return err.Field() + " must be at most " + err.Param()
	case "gt":
		return err.Field() + " must be greater than " + err.Param()
	case "oneof":
		return err.Field() + " must be one of [" + err.Param() + "]"
	case "transportmode":
		return err.Field() + " is not a supported transport mode"
	default:
		return err.Field() + " failed " + err.Tag() + " validation"
	}
}
