package services

import "errors"

// Failure taxonomy shared by all services. Controllers translate these to
// HTTP statuses 1:1 (400, 401, 403, 404, 409); anything unwrapped is a 500.
var (
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrDependency   = errors.New("blocked by dependent records")
)
