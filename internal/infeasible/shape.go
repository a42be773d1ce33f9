package infeasible

import (
	"sort"

	"github.com/lox/hanabi-infeasible/internal/deck"
)

// ShapeOptions bundles the configuration the shape enumeration
// recognises.
type ShapeOptions struct {
	// BDRs is the set of ranks whose first occurrence should be
	// treated as a bottom-deck risk and ignored rather than consumed.
	BDRs map[int]bool

	// HandCapacity, when HasHandCapacity is set, enables the
	// hand-distribution concern set: a rank whose second copy also
	// lies inside the starting-hand window joins the concern set.
	HandCapacity    int
	HasHandCapacity bool

	// PlayablesPlay records whether a just-playable card is assumed
	// to play immediately. Always true in current use.
	PlayablesPlay bool
}

// NewShapeOptions returns the default options: no bottom-deck risks,
// no hand-distribution tracking, playables-play enabled.
func NewShapeOptions() *ShapeOptions {
	return &ShapeOptions{BDRs: map[int]bool{}, PlayablesPlay: true}
}

// WithHandCapacity enables the hand-distribution concern set for the
// given starting-hand window size (Players*HandSize).
func (o *ShapeOptions) WithHandCapacity(capacity int) *ShapeOptions {
	o.HandCapacity = capacity
	o.HasHandCapacity = true
	return o
}

// SuitPath is a legal play order for one suit: SuitPath[i] is the deck
// position chosen for rank i+1, for i in [0, R).
type SuitPath []int

// IdentifyShape enumerates every SuitPath for one suit's cards under
// two rules: a copy that is already playable may never be discarded in
// favour of a later copy (no-playable-discard), and a duplicate that
// would sit uselessly in hand across unrelated plays is never held
// when a later copy exists (no-useless-duplicate-hold). Each recursive
// call owns its rank, path-so-far, and playable threshold by value.
func IdentifyShape(cards []deck.Card, topRank int, opts *ShapeOptions) []SuitPath {
	locations, concern := shapeLocations(cards, topRank, opts)
	return identifyRecurse(1, topRank, locations, concern, -1, nil)
}

// shapeLocations filters the raw, location-ordered cards of a suit
// down to the candidate deck position(s) per rank: a bottom-deck-risk
// first occurrence is dropped, and once a rank becomes playable the
// instant its predecessor is played, every later copy of that rank is
// dropped too (only the copy that arrives at the playable moment
// matters). It also computes the hand-distribution concern set.
func shapeLocations(cards []deck.Card, topRank int, opts *ShapeOptions) (locations [][]int, concern map[int]bool) {
	locations = make([][]int, topRank+1)
	isFirst := make([]bool, topRank+1)
	isPlayed := make([]bool, topRank+1)
	for r := 1; r <= topRank; r++ {
		isFirst[r] = true
	}
	isPlayed[0] = true

	for _, c := range cards {
		r := c.Rank
		if isFirst[r] && opts.BDRs[r] {
			isFirst[r] = false
			continue
		}
		if isPlayed[r] {
			continue
		}
		if isPlayed[r-1] {
			isPlayed[r] = true
		}
		locations[r] = append(locations[r], c.Location)
		isFirst[r] = false
	}

	concern = concernRanks(cards, opts)
	return locations, concern
}

// concernRanks returns the ranks that must be branched over every
// copy rather than collapsed: those whose second physical copy also
// lies inside the starting-hand window, where which player holds which
// copy can matter. cards must be in ascending deck-position order.
func concernRanks(cards []deck.Card, opts *ShapeOptions) map[int]bool {
	concern := map[int]bool{}
	if !opts.HasHandCapacity {
		return concern
	}
	counts := map[int]int{}
	for _, c := range cards {
		if c.Location >= opts.HandCapacity {
			break
		}
		counts[c.Rank]++
		if counts[c.Rank] == 2 {
			concern[c.Rank] = true
		}
	}
	return concern
}

func identifyRecurse(rank, topRank int, locations [][]int, concern map[int]bool, playable int, pathSoFar []int) []SuitPath {
	if rank > topRank {
		return []SuitPath{append(SuitPath(nil), pathSoFar...)}
	}
	locs := locations[rank]

	if concern[rank] {
		var paths []SuitPath
		for _, loc := range locs {
			threshold := playable
			if loc > threshold {
				threshold = loc
			}
			paths = append(paths, identifyRecurse(rank+1, topRank, locations, concern, threshold, appendLoc(pathSoFar, loc))...)
		}
		return paths
	}

	first := locs[0]
	if first > playable {
		return identifyRecurse(rank+1, topRank, locations, concern, first, appendLoc(pathSoFar, first))
	}

	last := locs[len(locs)-1]
	if last < playable {
		return identifyRecurse(rank+1, topRank, locations, concern, playable, appendLoc(pathSoFar, last))
	}

	split := sort.SearchInts(locs, playable+1) - 1
	path1 := identifyRecurse(rank+1, topRank, locations, concern, playable, appendLoc(pathSoFar, locs[split]))
	path2 := identifyRecurse(rank+1, topRank, locations, concern, locs[split+1], appendLoc(pathSoFar, locs[split+1]))
	return append(path1, path2...)
}

// appendLoc returns a new slice with loc appended, never aliasing
// pathSoFar's backing array, since the two recursive branches below
// must not observe each other's writes.
func appendLoc(pathSoFar []int, loc int) []int {
	out := make([]int, len(pathSoFar)+1)
	copy(out, pathSoFar)
	out[len(pathSoFar)] = loc
	return out
}
