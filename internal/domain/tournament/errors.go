package tournament

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicate           = errors.New("duplicate")
	ErrRegistrationNotOpen = errors.New("registration is not open yet")
	ErrRegistrationClosed  = errors.New("registration is closed")
	ErrAlreadyRegistered   = errors.New("player already registered")
)

// DuplicateError names the attribute whose uniqueness was violated.
type DuplicateError struct {
	Key string
}

func (e *DuplicateError) Error() string {
	return "duplication on field " + e.Key
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// AlreadyRegisteredError lists the players that already belong to a team.
type AlreadyRegisteredError struct {
	Players []int32
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%s: %v", ErrAlreadyRegistered, e.Players)
}

func (e *AlreadyRegisteredError) Is(target error) bool {
	return target == ErrAlreadyRegistered
}
