package motion

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvariantError(t *testing.T) {
	err := invariant("Node.Mount", "no element %s", "attached")

	if got := err.Error(); got != "motion: Node.Mount: no element attached" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(fmt.Errorf("wrapped: %w", err), ErrInvariantViolation) {
		t.Error("a wrapped InvariantError should match ErrInvariantViolation")
	}
	var ie *InvariantError
	if !errors.As(err, &ie) || ie.Op != "Node.Mount" {
		t.Errorf("errors.As() = %+v", ie)
	}
	if errors.Is(err, errors.New("motion: invariant violation")) {
		t.Error("only the sentinel itself should match")
	}
}
