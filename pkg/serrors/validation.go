package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps DTO field names to user-facing messages.
type ValidationErrors map[string]string

// FromValidator converts validator errors into per-field messages. Unknown
// tags fall back to a generic invalid-value message.
func FromValidator(err error) ValidationErrors {
	out := make(ValidationErrors)
	validatorErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return out
	}
	for _, fe := range validatorErrs {
		out[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "numeric":
		return fmt.Sprintf("%s must be a number", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
