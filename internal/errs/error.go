package errs

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDonorNotFound      = errors.New("donor not found")
	ErrLibrarianNotFound  = errors.New("librarian not found")
	ErrDuplicateMobile    = errors.New("donor with this mobile number already exists")
	ErrDuplicateISBN      = errors.New("book with this isbn already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries a client-safe message for a rejected request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
