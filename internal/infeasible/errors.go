package infeasible

import "fmt"

// SolverInvariantViolation is raised when an internal contradiction is
// reached — an impossible stack state, or a timing interval with no
// valid bounds — rather than a verdict on the deck itself. It
// indicates a solver bug, not hard data, and callers should log the
// offending deck and its replay URL before propagating.
type SolverInvariantViolation struct {
	Detail string
}

func (e *SolverInvariantViolation) Error() string {
	return fmt.Sprintf("infeasible: solver invariant violated: %s", e.Detail)
}
