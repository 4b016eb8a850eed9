package services

import (
	"errors"

	"github.com/tutorialhub/backend/internal/api/validate"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError carries a top-level message plus optional field errors.
// Handlers translate it to a 400.
type ValidationError struct {
	Message string
	Fields  validate.Errs
}

func (e ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return e.Message + ": " + e.Fields.Error()
	}
	return e.Message
}

func invalid(msg string, fields ...validate.ErrField) error {
	return ValidationError{Message: msg, Fields: fields}
}
