package services

import "errors"

// ValidationError is returned when caller input is rejected. Nothing is
// mutated when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

var (
	ErrCustomerNameRequired = &ValidationError{Field: "customerName", Message: "customer name is required"}
	ErrNoServiceItems       = &ValidationError{Field: "items", Message: "at least one service is required"}
	ErrInvalidDate          = &ValidationError{Field: "date", Message: "date must be YYYY-MM-DD and time HH:MM"}
	ErrInvalidBackup        = &ValidationError{Field: "backup", Message: "backup must contain bills and services arrays"}
	ErrServiceNameRequired  = &ValidationError{Field: "name", Message: "service name is required"}
)

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
