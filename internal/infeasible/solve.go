package infeasible

// Solve runs the full infeasibility proof pipeline over view: it
// enumerates every candidate whole-deck play order, eliminates the
// ones that provably lose on capacity or team pace, and either proves
// every remaining candidate infeasible by hand distribution (only
// candidates that fail the single-hand pace budget get that far) or
// stops at the first candidate that survives every filter.
//
// Team-pace loss alone proves a candidate infeasible outright (no
// distribution needed). A candidate that survives team pace goes to
// the distribution solver only if it fails the stricter single-hand
// budget; surviving both budgets stops the whole solve as
// feasible-not-proved.
//
// infeasible reports whether no winning play sequence exists under the
// infinite-clue, perfect-information model. forcedToPaceZero reports
// whether the hand-distribution solver had to be entered at all, i.e.
// every surviving candidate exhausted team pace.
func Solve(view *DeckView) (infeasible, forcedToPaceZero bool, err error) {
	suitPaths := make([][]SuitPath, view.S)
	opts := NewShapeOptions().WithHandCapacity(view.Capacity)
	for suit := 0; suit < view.S; suit++ {
		suitPaths[suit] = IdentifyShape(view.SuitCards(suit), view.R, opts)
	}

	pe := NewPathEnumerator(view.N, suitPaths)

	provedInfeasible := true
	foundPaceOne := false
	var distPaths []DeckPath

	pe.All(func(path DeckPath) bool {
		if CapacityLoss(view, path) {
			return true
		}
		if PaceLoss(view, path, view.Players) {
			return true
		}
		if !PaceLoss(view, path, 1) {
			foundPaceOne = true
			provedInfeasible = false
			return false
		}
		distPaths = append(distPaths, path)
		return true
	})

	if foundPaceOne {
		return false, false, nil
	}
	if len(distPaths) == 0 {
		return provedInfeasible, false, nil
	}

	for _, path := range distPaths {
		loss, derr := DistributionLoss(view, path)
		if derr != nil {
			return false, true, derr
		}
		if !loss {
			return false, true, nil
		}
	}
	return true, true, nil
}
