package validator

import (
	"github.com/go-playground/validator/v10"
	ierr "github.com/techsolutions/billing-service/internal/errors"
)

var validate *validator.Validate

// NewValidator initializes the package-level validator used for
// request struct tags. Wired once at startup through fx.
func NewValidator() *validator.Validate {
	validate = validator.New()
	return validate
}

// ValidateRequest checks req against its struct tags and converts
// failures into a validation error carrying per-field details
func ValidateRequest(req interface{}) error {
	if validate == nil {
		return ierr.NewError("validator not initialized").
			WithHint("Validator must be initialized before using it").
			Mark(ierr.ErrSystem)
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	details := make(map[string]any)
	var validateErrs validator.ValidationErrors
	if ierr.As(err, &validateErrs) {
		for _, fieldErr := range validateErrs {
			details[fieldErr.Field()] = fieldErr.Error()
		}
	}
	return ierr.WithError(err).
		WithHint("Request validation failed").
		WithReportableDetails(details).
		Mark(ierr.ErrValidation)
}
