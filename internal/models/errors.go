package models

import "errors"

// Sentinel errors shared by repositories, services and handlers. Wrap them
// with fmt.Errorf("%w: ...") to add detail.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrValidation        = errors.New("validation failed")
)
