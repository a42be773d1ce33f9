// Package infeasible implements the three-stage infeasibility proof
// pipeline for Hanabi-family decks: ShapeIdentifier enumerates legal
// per-suit play orders, PathEnumerator combines them into whole-deck
// candidates, and PaceChecker/DistributionSolver rule candidates out
// until either every one is eliminated (infeasible) or one survives
// (feasible, not proved).
package infeasible

import (
	"github.com/lox/hanabi-infeasible/internal/deck"
	"github.com/lox/hanabi-infeasible/internal/variant"
)

// DeckView is a read-only, per-solve view over a shuffled Deck: O(1)
// card lookup by location and precomputed per-suit rank location
// lists, with the rank-1/rank-R collapse applied (only the earliest
// copy of rank 1, and of the top rank, can ever matter).
type DeckView struct {
	d *deck.Deck

	S, R, N, MaxScore           int
	Players, HandSize, Capacity int

	// locations[suit][rank] holds every deck position of that card,
	// ascending, with only the earliest entry kept for rank 1 and R.
	locations [][][]int
}

// NewDeckView builds a DeckView for d, assuming players teammates each
// holding handSize cards.
func NewDeckView(d *deck.Deck, players, handSize int) *DeckView {
	v := d.Variant
	s, r := v.NumSuits(), v.TopRank()
	dv := &DeckView{
		d:         d,
		S:         s,
		R:         r,
		N:         d.N(),
		MaxScore:  v.MaxScore(),
		Players:   players,
		HandSize:  handSize,
		Capacity:  players * handSize,
		locations: make([][][]int, s),
	}
	for suit := range dv.locations {
		dv.locations[suit] = make([][]int, r+1)
	}
	for loc, c := range d.Cards {
		dv.locations[c.Suit][c.Rank] = append(dv.locations[c.Suit][c.Rank], loc)
	}
	for suit := 0; suit < s; suit++ {
		if len(dv.locations[suit][1]) > 0 {
			dv.locations[suit][1] = dv.locations[suit][1][:1]
		}
		if len(dv.locations[suit][r]) > 0 {
			dv.locations[suit][r] = dv.locations[suit][r][:1]
		}
	}
	return dv
}

// CardAt returns the card at deck position loc.
func (dv *DeckView) CardAt(loc int) deck.Card { return dv.d.Cards[loc] }

// SuitLocations returns the (collapsed) deck positions of suit/rank,
// ascending.
func (dv *DeckView) SuitLocations(suit, rank int) []int { return dv.locations[suit][rank] }

// SuitCards returns every card of suit, in deck (location) order,
// uncollapsed — the raw input ShapeIdentifier filters down to the
// collapsed candidate locations per rank.
func (dv *DeckView) SuitCards(suit int) []deck.Card {
	cards := make([]deck.Card, 0, dv.N/dv.S+1)
	for _, c := range dv.d.Cards {
		if c.Suit == suit {
			cards = append(cards, c)
		}
	}
	return cards
}

// CardIdx returns the compact R*suit+rank identity used by the
// distribution solver's timing-interval and connectivity maps.
func (dv *DeckView) CardIdx(suit, rank int) int { return dv.R*suit + rank }

// Variant returns the variant backing this view.
func (dv *DeckView) Variant() *variant.Spec { return dv.d.Variant }
