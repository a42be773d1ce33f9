package infeasible

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/hanabi-infeasible/internal/deck"
)

// paceZeroView builds a one-of-each five-suit deck drawn in rank-major
// round-robin order with suit 0's rank 3 and rank 4 swapped, so suit
// 0's rank 3 arrives at position 15 — late enough that the pinned-play
// sum draws level with the team pace budget from there down to
// position 11 without ever exceeding it. The deck therefore survives
// the team budget, fails the single-hand budget, and hands the
// distribution solver a pace-zero window of [11, 15] with every
// starting-hand card already played by the first breakpoint.
func paceZeroView(t *testing.T) (*DeckView, DeckPath) {
	t.Helper()
	v := oneOfEachVariant()
	var cards []deck.Card
	for rank := 1; rank <= 5; rank++ {
		for suit := 0; suit < 5; suit++ {
			cards = append(cards, deck.NewCard(suit, rank))
		}
	}
	cards[10], cards[15] = cards[15], cards[10]
	d := &deck.Deck{Variant: v}
	d.SetCards(cards)

	view := NewDeckView(d, 2, 5)
	path := make(DeckPath, view.N)
	for i := range path {
		path[i] = true
	}
	return view, path
}

func TestAssignHelperSameHandBlocks(t *testing.T) {
	hand1 := []cardKey{{0, 5}, {1, 5}}
	hand2 := []cardKey{{2, 5}}

	// Both ending cards in hand 1: one player cannot play both on the
	// final turn.
	require.True(t, assignHelper([2]cardKey{{0, 5}, {1, 5}}, hand1, hand2, false))
	// Split across hands, or not in the starting hands at all: fine.
	require.False(t, assignHelper([2]cardKey{{0, 5}, {2, 5}}, hand1, hand2, false))
	require.False(t, assignHelper([2]cardKey{{3, 5}, {4, 5}}, hand1, hand2, false))
}

func TestAssignHelperAntiModeDetectsForcedSplit(t *testing.T) {
	hand1 := []cardKey{{0, 5}, {1, 5}}
	hand2 := []cardKey{{2, 5}}

	require.True(t, assignHelper([2]cardKey{{0, 5}, {2, 5}}, hand1, hand2, true))
	require.True(t, assignHelper([2]cardKey{{2, 5}, {1, 5}}, hand1, hand2, true))
	require.False(t, assignHelper([2]cardKey{{0, 5}, {1, 5}}, hand1, hand2, true))
	require.False(t, assignHelper([2]cardKey{{3, 5}, {4, 5}}, hand1, hand2, true))
}

func TestSuitRankFromIdxInvertsCardIdx(t *testing.T) {
	view, _ := paceZeroView(t)
	for suit := 0; suit < view.S; suit++ {
		for rank := 1; rank <= view.R; rank++ {
			gotSuit, gotRank := view.suitRankFromIdx(view.CardIdx(suit, rank))
			require.Equal(t, suit, gotSuit)
			require.Equal(t, rank, gotRank)
		}
	}
}

// Forward-simulating to each breakpoint: by position 11 every suit has
// played its 1 and 2; the rank 3s of suits 1..4 play one by one on the
// way to position 15.
func TestPaceZeroStackSnapshots(t *testing.T) {
	view, path := paceZeroView(t)
	breakpoints := PaceBreakpoints(view, path, 0)
	require.NotEmpty(t, breakpoints)

	snapshots := paceZeroStackSnapshots(view, path, breakpoints)
	require.Equal(t, []int{2, 2, 2, 2, 2}, snapshots[11])
	require.Equal(t, []int{2, 3, 3, 3, 3}, snapshots[15])
}

func TestComputeTimingIntervals(t *testing.T) {
	view, path := paceZeroView(t)
	stacksL0 := []int{2, 2, 2, 2, 2}

	earliest, latest := computeTimingIntervals(view, path, 11, stacksL0)

	// Every reachable card must yield an interval with a valid order.
	for idx, e := range earliest {
		l, ok := latest[idx]
		require.True(t, ok, "card %d has an earliest turn but no latest", idx)
		require.LessOrEqual(t, e, l)
	}

	// Suit 1's rank 3 is in hand at the window start and is the only
	// playable card: it must play on the first virtual turn in both
	// the eager and the deferring simulation.
	s1r3 := view.CardIdx(1, 3)
	require.Equal(t, 12, earliest[s1r3])
	require.Equal(t, 12, latest[s1r3])

	// Suit 0's rank 5 is the very last card a deferring line can play:
	// the final virtual turn after the deck runs out.
	s0r5 := view.CardIdx(0, 5)
	require.Equal(t, 26, latest[s0r5])
}

// The swapped round-robin deck is forced to pace zero, but the play
// chain through the pace-zero window reaches a valid two-suit 5+5
// ending with both starting hands already empty of critical cards, so
// no infeasibility proof exists.
func TestDistributionLossRoutableEndingNotProved(t *testing.T) {
	view, path := paceZeroView(t)

	loss, err := DistributionLoss(view, path)
	require.NoError(t, err)
	require.False(t, loss)
}

// A deck with no pace-zero breakpoint never enters the distribution
// analysis at all.
func TestDistributionLossNoBreakpoints(t *testing.T) {
	v := oneOfEachVariant()
	var roundRobin []deck.Card
	for rank := 1; rank <= 5; rank++ {
		for suit := 0; suit < 5; suit++ {
			roundRobin = append(roundRobin, deck.NewCard(suit, rank))
		}
	}
	d := &deck.Deck{Variant: v}
	d.SetCards(roundRobin)
	view := NewDeckView(d, 2, 5)
	path := make(DeckPath, view.N)
	for i := range path {
		path[i] = true
	}

	loss, err := DistributionLoss(view, path)
	require.NoError(t, err)
	require.False(t, loss)
}

// End to end: the swapped deck survives capacity and team pace, fails
// single-hand pace, and the distribution solver cannot rule it out —
// the verdict is feasible-not-proved with the pace-zero flag raised.
func TestSolvePaceZeroDeckReportsForced(t *testing.T) {
	view, _ := paceZeroView(t)

	infeasible, forcedToPaceZero, err := Solve(view)
	require.NoError(t, err)
	require.False(t, infeasible)
	require.True(t, forcedToPaceZero)
}
