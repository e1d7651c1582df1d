package services

import "fmt"

// ValidationError is returned for caller mistakes (missing field, bad value);
// handlers map it to 400, everything else stays a server-side error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

const (
	deadlineFormError     = "A date from the past was given"
	birthDateFormError    = "Please provide the correct date of birth"
	passwordNumericError  = "Password can't be entirely numeric"
	passwordTooShortError = "Password must be at least 8 characters long"
)
