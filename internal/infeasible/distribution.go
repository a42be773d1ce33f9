package infeasible

// DistributionLoss runs the hand-distribution solver over a path that
// has already survived the capacity filter, survived team pace, and
// failed single-hand pace — the pace-zero-but-maybe-winnable regime
// where which of the two players holds which card decides the
// outcome. It assumes dv.Players == 2.
//
// An error is returned only for an internal contradiction (a timing
// interval with no valid bounds) — a solver bug, not a verdict on the
// deck.
func DistributionLoss(dv *DeckView, path DeckPath) (bool, error) {
	breakpoints := PaceBreakpoints(dv, path, 0)
	if len(breakpoints) == 0 {
		return false, nil
	}
	stackAt := paceZeroStackSnapshots(dv, path, breakpoints)

	l0, lf := breakpoints[0], breakpoints[0]
	for _, bp := range breakpoints {
		if bp < l0 {
			l0 = bp
		}
		if bp > lf {
			lf = bp
		}
	}
	zero := make([]int, dv.S)
	stacksL0 := stackAt[l0]
	if stacksL0 == nil {
		stacksL0 = zero
	}
	stacksLf := stackAt[lf]
	if stacksLf == nil {
		stacksLf = zero
	}

	// ----- step 1: categorise cards -----
	var hand1, hand2, pace0 []cardKey
	for loc := 0; loc < dv.HandSize; loc++ {
		if path[loc] {
			c := dv.CardAt(loc)
			if stacksL0[c.Suit] < c.Rank {
				hand1 = append(hand1, cardKey{c.Suit, c.Rank})
			}
		}
	}
	for loc := dv.HandSize; loc < 2*dv.HandSize; loc++ {
		if path[loc] {
			c := dv.CardAt(loc)
			if stacksL0[c.Suit] < c.Rank {
				hand2 = append(hand2, cardKey{c.Suit, c.Rank})
			}
		}
	}
	for loc := l0; loc < dv.N; loc++ {
		if path[loc] {
			c := dv.CardAt(loc)
			pace0 = append(pace0, cardKey{c.Suit, c.Rank})
		}
	}

	// ----- step 2: unique ending? -----
	notTop := 0
	for _, s := range stacksLf {
		if s != dv.R {
			notTop++
		}
	}
	unique := notTop == 1

	// ----- step 3: enumerate valid endings -----
	var validAssigns [][2]cardKey
	for i := 0; i < dv.S; i++ {
		if stacksLf[i] >= dv.R {
			continue
		}
		for j := 0; j < dv.S; j++ {
			if i == j || stacksLf[j] >= dv.R {
				continue
			}
			attempt := [2]cardKey{{i, dv.R}, {j, dv.R}}
			if assignHelper(attempt, hand1, hand2, false) {
				continue
			}
			validAssigns = append(validAssigns, attempt)
		}
	}
	for i := 0; i < dv.S; i++ {
		if stacksLf[i] >= dv.R-1 {
			continue
		}
		attempt := [2]cardKey{{i, dv.R - 1}, {i, dv.R}}
		if assignHelper(attempt, hand1, hand2, false) {
			continue
		}
		validAssigns = append(validAssigns, attempt)
	}

	if len(validAssigns) == 0 {
		return true, nil
	}

	if unique {
		suit := validAssigns[0][0].Suit
		attempt := [2]cardKey{{suit, dv.R - 2}, {suit, dv.R - 1}}
		if assignHelper(attempt, hand1, hand2, false) {
			return true, nil
		}
		attempt = [2]cardKey{{suit, dv.R - 2}, {suit, dv.R}}
		if assignHelper(attempt, hand1, hand2, true) {
			return true, nil
		}
	}

	for _, assign := range validAssigns {
		if !containsKey(pace0, assign[0]) && !containsKey(pace0, assign[1]) {
			if unique {
				continue
			}
			return false, nil
		}
	}

	// ----- step 4: timing intervals -----
	earliest, latest := computeTimingIntervals(dv, path, l0, stacksL0)
	for idx, e := range earliest {
		l, ok := latest[idx]
		if !ok {
			return false, &SolverInvariantViolation{Detail: "timing interval missing latest bound"}
		}
		if e > l {
			return false, &SolverInvariantViolation{Detail: "timing interval earliest > latest"}
		}
	}

	// ----- step 5: connectivity -----
	precursors := map[int][]int{}
	successors := map[int][]int{}
	for deckLoc := l0; deckLoc < dv.N; deckLoc++ {
		if !path[deckLoc] {
			continue
		}
		drawn := dv.CardAt(deckLoc)
		drawnIdx := drawn.Idx(dv.R)
		for preIdx, e := range earliest {
			l := latest[preIdx]
			if e <= deckLoc && deckLoc <= l {
				precursors[drawnIdx] = append(precursors[drawnIdx], preIdx)
				successors[preIdx] = append(successors[preIdx], drawnIdx)
			}
		}
	}

	connectors := map[int]bool{}
	connectors[dv.CardAt(l0).Idx(dv.R)] = true
	for deckLoc := l0; deckLoc < dv.N; deckLoc++ {
		if !path[deckLoc] {
			continue
		}
		idx := dv.CardAt(deckLoc).Idx(dv.R)
		if connectors[idx] {
			for _, succ := range successors[idx] {
				connectors[succ] = true
			}
		}
	}

	end := false
	for _, assign := range validAssigns {
		for _, ck := range assign {
			if connectors[dv.CardIdx(ck.Suit, ck.Rank)] {
				end = true
				break
			}
		}
		if end {
			break
		}
	}
	if !end {
		// Degrees of freedom counts the cards still unassigned at the
		// first breakpoint: not yet played there, not in a starting
		// hand, not drawn inside the pace-zero window.
		played := 0
		for _, s := range stacksL0 {
			played += s
		}
		degreesOfFreedom := dv.S*dv.R - played - (len(hand1) + len(hand2) + len(pace0))
		if degreesOfFreedom == 0 && (len(hand1) == 0 || len(hand2) == 0) {
			return true, nil
		}
	}

	if unique {
		suit := validAssigns[0][0].Suit
		idx := dv.CardIdx(suit, dv.R-2)
		queue := append([]int(nil), precursors[idx]...)
		queued := map[int]bool{}
		for _, q := range queue {
			queued[q] = true
		}
		goodDist := len(queue) == 0
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]

			suit2, rank2 := dv.suitRankFromIdx(idx)
			attempt := [2]cardKey{{suit, dv.R - 1}, {suit2, rank2}}
			if assignHelper(attempt, hand1, hand2, false) {
				continue
			}
			attempt = [2]cardKey{{suit, dv.R}, {suit2, rank2}}
			if assignHelper(attempt, hand1, hand2, true) {
				continue
			}

			if len(precursors[idx]) == 0 {
				goodDist = true
				break
			}
			for _, pre := range precursors[idx] {
				if queued[pre] {
					continue
				}
				queued[pre] = true
				queue = append(queue, pre)
			}
		}
		if !goodDist {
			return true, nil
		}
	}

	return false, nil
}

// suitRankFromIdx inverts CardIdx.
func (dv *DeckView) suitRankFromIdx(idx int) (suit, rank int) {
	suit = (idx - 1) / dv.R
	rank = (idx-1)%dv.R + 1
	return suit, rank
}

// assignHelper reports, in normal mode, whether both cards of t are
// forced into the same starting hand (blocking an ending that needs
// them played simultaneously by different players); in anti mode, it
// reports whether they are forced into different hands.
func assignHelper(t [2]cardKey, hand1, hand2 []cardKey, anti bool) bool {
	if !anti {
		return (containsKey(hand1, t[0]) && containsKey(hand1, t[1])) ||
			(containsKey(hand2, t[0]) && containsKey(hand2, t[1]))
	}
	return (containsKey(hand1, t[0]) && containsKey(hand2, t[1])) ||
		(containsKey(hand2, t[0]) && containsKey(hand1, t[1]))
}

func containsKey(ks []cardKey, k cardKey) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}

// paceZeroStackSnapshots records, for every pace-value breakpoint
// location, the per-suit stack state immediately before that
// location's card is played, walking the deck forward. A breakpoint
// whose own deck position is not part of path is left unrecorded: the
// forward scan skips every position with path[i] false, so such a
// breakpoint's stack state is never captured.
func paceZeroStackSnapshots(dv *DeckView, path DeckPath, breakpoints []int) map[int][]int {
	remaining := map[int]bool{}
	for _, bp := range breakpoints {
		remaining[bp] = true
	}
	snapshots := map[int][]int{}
	stacks := make([]int, dv.S)
	hand := map[cardKey]bool{}
	for loc := 0; loc < dv.N; loc++ {
		if !path[loc] {
			continue
		}
		if remaining[loc] {
			snapshots[loc] = append([]int(nil), stacks...)
			delete(remaining, loc)
			if len(remaining) == 0 {
				break
			}
		}
		c := dv.CardAt(loc)
		if stacks[c.Suit] == c.Rank-1 {
			stacks[c.Suit]++
			next := cardKey{c.Suit, stacks[c.Suit] + 1}
			for hand[next] {
				delete(hand, next)
				stacks[c.Suit]++
				next = cardKey{c.Suit, stacks[c.Suit] + 1}
			}
		} else {
			hand[cardKey{c.Suit, c.Rank}] = true
		}
	}
	return snapshots
}

// computeTimingIntervals computes, for every (suit, rank) card index
// still unplayed at l0, the earliest and latest virtual turn at which
// it can be the card played: the earliest from an eager simulation
// playing everything as soon as possible, the latest from one greedy
// pass per suit that defers that suit whenever any other can play.
func computeTimingIntervals(dv *DeckView, path DeckPath, l0 int, stacksL0 []int) (earliest, latest map[int]int) {
	earliest = map[int]int{}
	latest = map[int]int{}

	hand := map[cardKey]bool{}
	stacks0 := append([]int(nil), stacksL0...)
	for i := 0; i <= l0; i++ {
		if !path[i] {
			continue
		}
		c := dv.CardAt(i)
		if c.Rank > stacks0[c.Suit] {
			hand[cardKey{c.Suit, c.Rank}] = true
		}
	}
	tempHand := map[cardKey]bool{}
	for k := range hand {
		tempHand[k] = true
	}

	// Earliest turns.
	stacks := append([]int(nil), stacksL0...)
	h := map[cardKey]bool{}
	for k := range hand {
		h[k] = true
	}
	for drawLoc := l0 + 1; drawLoc < dv.N+dv.Players; drawLoc++ {
		for suit := 0; suit < dv.S; suit++ {
			rank := stacks[suit] + 1
			key := cardKey{suit, rank}
			if h[key] {
				delete(h, key)
				stacks[suit]++
				idx := dv.CardIdx(suit, rank)
				if _, ok := earliest[idx]; !ok {
					earliest[idx] = drawLoc
				}
			}
		}
		if drawLoc < dv.N && path[drawLoc] {
			c := dv.CardAt(drawLoc)
			h[cardKey{c.Suit, c.Rank}] = true
		}
	}

	// Latest turns, one greedy pass per "chosen" suit deferred to last.
	for chosenSuit := 0; chosenSuit < dv.S; chosenSuit++ {
		stacks := append([]int(nil), stacksL0...)
		h := map[cardKey]bool{}
		for k := range tempHand {
			h[k] = true
		}
		for drawLoc := l0 + 1; drawLoc < dv.N+dv.Players; drawLoc++ {
			found := false
			playedSuit, playedRank := -1, -1
			for suit := 0; suit < dv.S; suit++ {
				if suit == chosenSuit {
					continue
				}
				rank := stacks[suit] + 1
				if h[cardKey{suit, rank}] {
					found = true
					playedSuit, playedRank = suit, rank
					break
				}
			}
			if !found {
				playedSuit, playedRank = chosenSuit, stacks[chosenSuit]+1
				idx := dv.CardIdx(playedSuit, playedRank)
				latest[idx] = drawLoc
			}
			delete(h, cardKey{playedSuit, playedRank})
			stacks[playedSuit]++
			if drawLoc < dv.N && path[drawLoc] {
				c := dv.CardAt(drawLoc)
				h[cardKey{c.Suit, c.Rank}] = true
			}
		}
	}

	return earliest, latest
}
