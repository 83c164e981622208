package service

import (
	"errors"
	"fmt"

	"maitri-medico/internal/repository"
	"maitri-medico/pkg/validator"
)

// Error kinds. Operations wrap one of these and callers test with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrDependencyFailure = errors.New("dependency failure")
	ErrForbidden         = errors.New("forbidden")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return invalid("field '%s' failed on tag '%s'", first.FailedField, first.Tag)
}

// kindOf re-kinds repository errors; anything else passes through.
func kindOf(err error, what string, id interface{}) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %s %v", ErrNotFound, what, id)
	case errors.Is(err, repository.ErrNotPending):
		return fmt.Errorf("%w: %s %v is no longer pending", ErrConflict, what, id)
	}
	return err
}
