package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	errors "github.com/clinicore/hr-management/internal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct runs struct-tag validation and translates failures into the
// field-level error shape the API returns. Returns nil on success.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if stderrors.As(err, &invalid) {
		return errors.NewInternalError("validation misconfigured", err)
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewInternalError("validation failed unexpectedly", err)
	}

	out := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, errors.ValidationError{
			Field:   fieldName(fe),
			Message: messageFor(fe),
			Code:    string(errors.ErrCodeValidationFailed),
		})
	}

	return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: out})
}

// Var validates a single value against a tag expression, e.g. "required,uuid4".
func Var(field string, value interface{}, tag string) error {
	if err := validate.Var(value, tag); err != nil {
		return errors.NewValidationFieldError(field, fmt.Sprintf("%s is invalid", field), errors.ErrCodeValidationFailed)
	}
	return nil
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "CreateEmployeeDTO.FirstName"; strip the
	// struct prefix and snake-case the rest to match JSON field names.
	name := fe.Field()
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func messageFor(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "uuid4", "uuid":
		return fmt.Sprintf("%s must be a valid identifier", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "uppercase":
		return fmt.Sprintf("%s must be uppercase", field)
	case "alphanum":
		return fmt.Sprintf("%s must be alphanumeric", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
