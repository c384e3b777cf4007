package services

import (
	"errors"
	"fmt"
)

var (
	// ErrGoalNotFound is wrapped by the ActivityLoggerError returned when a goal to
	// recompute or attribute to does not exist.
	ErrGoalNotFound = errors.New("Goal not found")

	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ActivityLoggerError tags failures raised while logging activities or
// recomputing goal progress. Err carries the underlying cause.
type ActivityLoggerError struct {
	Op  string
	Msg string
	Err error
}

func (e *ActivityLoggerError) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("activity logger: %s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("activity logger: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("activity logger: %s: %s", e.Op, e.Msg)
	}
}

func (e *ActivityLoggerError) Unwrap() error {
	return e.Err
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
