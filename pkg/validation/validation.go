// Package validation checks request DTOs before they reach the services.
// Field presence, length bounds, email/url formats and enum membership are
// caught here; business rules stay in the services.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"devclub.community/pkg/responses"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Check runs struct-tag validation and maps failures into the envelope's
// errors array. Returns nil when the value is valid.
func Check(v interface{}) []responses.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []responses.FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]responses.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, responses.FieldError{
			Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("cannot exceed %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
