package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"netbill/internal/shared/errors"
)

var validate = validator.New()

// ValidateStruct validates a struct using validator tags and converts
// failures into an application validation error.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	if ve, ok := err.(validator.ValidationErrors); ok {
		details := make([]string, 0, len(ve))
		for _, fe := range ve {
			details = append(details, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		return errors.NewValidationError("invalid request", strings.Join(details, "; "))
	}

	return errors.NewValidationError("invalid request", err.Error())
}
