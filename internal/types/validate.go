package types

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents an invalid field in a request or form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// requestValidator is built once and shared by every Validate call.
var requestValidator = sync.OnceValue(newValidator)

// newValidator returns a validator with the custom "tone" rule registered.
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("tone", func(fl validator.FieldLevel) bool {
		_, err := ParseTone(fl.Field().String())
		return err == nil
	})
	return validate
}

// Validate validates the AdvertisementRequest using the validator.
func (r *AdvertisementRequest) Validate() error {
	return toValidationError(requestValidator().Struct(r))
}

// Validate validates the FeedbackEvent using the validator.
func (f *FeedbackEvent) Validate() error {
	return toValidationError(requestValidator().Struct(f))
}

// toValidationError converts the first validator failure into a *ValidationError.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "required_without":
		return &ValidationError{Field: field, Message: "is required"}
	case "oneof":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())}
	case "min":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at least %s", fe.Param())}
	case "max":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %s", fe.Param())}
	case "gtefield":
		return &ValidationError{Field: field, Message: fmt.Sprintf("must not be smaller than %s", strings.ToLower(fe.Param()))}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}
