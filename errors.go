package motion

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation is returned when an operation is called with its
// preconditions unmet. It indicates a bug in the caller, not a runtime
// condition, and nothing is retried.
var ErrInvariantViolation = errors.New("motion: invariant violation")

// InvariantError describes which operation was misused and how.
// It matches ErrInvariantViolation with errors.Is.
type InvariantError struct {
	Op     string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("motion: %s: %s", e.Op, e.Reason)
}

// Is reports whether target is ErrInvariantViolation.
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariantViolation
}

func invariant(op, format string, args ...any) error {
	return &InvariantError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
