package domain

import "fmt"

// ValidationError reports caller-supplied input that fails a service-level
// invariant, e.g. a zero-length rental span or a return mileage below the
// checkout mileage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
