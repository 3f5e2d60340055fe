package booking

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("booking not found")
	ErrForbidden  = errors.New("not allowed to change this booking")
	// ErrInvalidTransition means the booking is not in the state the action
	// starts from.
	ErrInvalidTransition = errors.New("transition not allowed from current status")
	// ErrConflict means another request changed the booking first.
	ErrConflict = errors.New("booking was modified concurrently")
)
