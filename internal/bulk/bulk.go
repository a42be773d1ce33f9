// Package bulk drives the infeasibility solver over a range of seeds:
// a parallel worker pool, CSV/YAML reporting, checkpoint/resume, and a
// live terminal progress bar. The solver itself is a pure function of
// the Deck and variant Spec; everything stateful lives here.
package bulk

import "time"

// SeedResult is one row of the bulk CSV output: Seed, Deck,
// Infeasible, Forced to Pace Zero, Duration.
type SeedResult struct {
	Seed             string
	Deck             string
	Infeasible       bool
	ForcedToPaceZero bool
	Duration         time.Duration

	// ReplayURL and Err are not CSV columns but are attached so the
	// caller can log an invariant violation with full context.
	ReplayURL string
	Err       error
}
