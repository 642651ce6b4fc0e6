package domain

import "errors"

// Error kinds surfaced by the services. Concrete errors wrap one of these
// with fmt.Errorf("%w: ...") and are matched with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
)
