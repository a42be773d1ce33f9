package infeasible

// DeckPath is a whole-deck candidate play order: DeckPath[loc] is true
// iff the card at that deck position is the chosen copy of its
// (suit, rank) in this candidate.
type DeckPath []bool

// PathEnumerator produces the Cartesian product, across suits, of
// their SuitPath lists, streaming DeckPaths in deterministic
// lexicographic order (rightmost suit varies fastest) so a caller can
// stop early without having materialised the whole product.
type PathEnumerator struct {
	n         int
	suitPaths [][]SuitPath
}

// NewPathEnumerator builds an enumerator over n deck positions and the
// per-suit SuitPath candidates suitPaths[suit].
func NewPathEnumerator(n int, suitPaths [][]SuitPath) *PathEnumerator {
	return &PathEnumerator{n: n, suitPaths: suitPaths}
}

// Count returns the number of DeckPaths the product would yield.
func (pe *PathEnumerator) Count() int {
	total := 1
	for _, sp := range pe.suitPaths {
		total *= len(sp)
	}
	return total
}

// All is a range-over-func iterator: it yields every DeckPath in
// order, stopping early if yield returns false.
func (pe *PathEnumerator) All(yield func(DeckPath) bool) {
	numSuits := len(pe.suitPaths)
	for _, sp := range pe.suitPaths {
		if len(sp) == 0 {
			return
		}
	}
	choice := make([]int, numSuits)
	for {
		path := make(DeckPath, pe.n)
		for suit, c := range choice {
			for _, loc := range pe.suitPaths[suit][c] {
				path[loc] = true
			}
		}
		if !yield(path) {
			return
		}

		i := numSuits - 1
		for i >= 0 {
			choice[i]++
			if choice[i] < len(pe.suitPaths[i]) {
				break
			}
			choice[i] = 0
			i--
		}
		if i < 0 {
			return
		}
	}
}
