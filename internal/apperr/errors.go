// Package apperr holds the error kinds shared by every layer. Component errors
// wrap one of these so callers can branch with errors.Is.
package apperr

import "errors"

var (
	ErrInvalid         = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)
