package usecase

import (
	"errors"
	"fmt"
)

// Service errors. The HTTP layer maps each one to a status code; the wrapped
// message is what the caller sees.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// notFound reports a missing record of the given kind, e.g. "tournament=osuwc".
func notFound(kind, ref string) error {
	return fmt.Errorf("%w: %s=%s", ErrNotFound, kind, ref)
}

// invalid wraps a domain validation failure as invalid input.
func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
