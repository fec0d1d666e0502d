package shared

import "errors"

var (

	// common errors
	ErrorNotFound = errors.New("not found")

	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")

	// auth-specific errors
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")
	ErrorInvalidLoginPassword    = errors.New("invalid login/password")
	ErrorForbidden               = errors.New("forbidden")
)

// ValidationError carries per-field messages and matches ErrorValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrorValidation.Error()
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrorValidation
}
