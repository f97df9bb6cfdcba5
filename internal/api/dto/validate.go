package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

var validate = validator.New()

// Validate runs struct tag validation and converts failures into a
// ValidationError whose details map field names to the violated rule.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("validation failed", details)
}
