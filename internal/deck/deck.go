package deck

import (
	"fmt"
	"strings"

	"github.com/lox/hanabi-infeasible/internal/variant"
)

// Deck is an ordered sequence of cards for a single variant. Cards are
// built unshuffled by New, then either Shuffle or SetCards (via
// ParseDeckString) fixes their order and assigns Location fields.
type Deck struct {
	Variant *variant.Spec
	Cards   []Card
}

// New builds the full, unshuffled multiplicity of cards for v: three
// copies of rank 1, two copies of ranks 2..R-1, and one copy of rank
// R, per suit, except a OneOfEach suit which contributes exactly one
// copy of every rank.
func New(v *variant.Spec) *Deck {
	r := v.TopRank()
	var cards []Card
	for suit, s := range v.Suits {
		for rank := 1; rank <= r; rank++ {
			for n := 0; n < copiesOf(s, rank, r); n++ {
				cards = append(cards, NewCard(suit, rank))
			}
		}
	}
	return &Deck{Variant: v, Cards: cards}
}

func copiesOf(s variant.SuitSpec, rank, topRank int) int {
	if s.OneOfEach {
		return 1
	}
	switch {
	case rank == 1:
		return 3
	case rank == topRank:
		return 1
	default:
		return 2
	}
}

// N returns the deck size.
func (d *Deck) N() int { return len(d.Cards) }

// SetCards replaces the deck's cards, assigning Location 0..len-1 in
// slice order.
func (d *Deck) SetCards(cards []Card) {
	for i := range cards {
		cards[i].Location = i
	}
	d.Cards = cards
}

// Shuffle deterministically reorders the deck for seed, replicating
// CPython's random.Random(seed).shuffle bit for bit (SHA-512 string
// seeding into MT19937, Fisher-Yates with rejection-sampled indices),
// so a seed string yields the same deck order here as in the Python
// tooling that established the known-seed results.
func (d *Deck) Shuffle(seed string) {
	rng := newMT19937(seedKey(seed))
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := rng.randBelow(uint32(i + 1))
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
	for i := range d.Cards {
		d.Cards[i].Location = i
	}
}

// String renders the deck as whitespace-separated abbreviation+rank
// tokens (e.g. "r1 y2 g3"), the canonical form ParseDeckString accepts
// back.
func (d *Deck) String() string {
	tokens := make([]string, len(d.Cards))
	for i, c := range d.Cards {
		suit := d.Variant.Suits[c.Suit]
		tokens[i] = fmt.Sprintf("%s%d", strings.ToLower(suit.String()), c.Rank)
	}
	return strings.Join(tokens, " ")
}
