package usecase

import "errors"

// Error kinds returned by the services. Callers match them with errors.Is;
// the wrapped text is the user-facing message.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrMismatch        = errors.New("code mismatch")
	ErrConflict        = errors.New("already exists")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrUpstream        = errors.New("upstream provider failure")
	ErrStorage         = errors.New("storage failure")
)
