package irt

import (
	"errors"
	"fmt"
)

// ErrDegenerateResponses is returned when every response is correct or
// every response is incorrect. The likelihood is then monotonic over the
// whole theta domain and has no interior maximum.
var ErrDegenerateResponses = errors.New("degenerate response pattern: all correct or all incorrect")

// InvalidItemError reports an item (or response vector) that violates the
// model's preconditions. It is raised before any optimization attempt.
type InvalidItemError struct {
	Index  int
	Reason string
}

func (e *InvalidItemError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid item %d: %s", e.Index, e.Reason)
}

// NonConvergenceError reports a search that exhausted its iteration budget
// before the bracket shrank below tolerance.
type NonConvergenceError struct {
	Iterations   int
	BracketWidth float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("estimation did not converge after %d iterations (bracket width %g)",
		e.Iterations, e.BracketWidth)
}
