// Package replay builds hanab.live shared-replay URLs for a Deck: a
// dash-joined, base62-encoded compact payload of three comma-separated
// sections.
package replay

import (
	"fmt"
	"strings"

	"github.com/lox/hanabi-infeasible/internal/deck"
)

// base62Alphabet is the alphabet hanab.live expects: lowercase, then
// digits, then uppercase.
const base62Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// dashInterval is how often the final string is broken with a dash.
const dashInterval = 20

// URL builds the shared-replay URL for d, assuming players teammates
// and no actions recorded (a bare deck-order replay):
//
//	<players><rankMin><rankMax><deckBase62>,<actionsLiteral>,<variantId>
//
// dash-joined every 20 characters.
func URL(d *deck.Deck, players int) string {
	s := d.Variant.NumSuits()
	r := d.Variant.TopRank()
	var b strings.Builder
	fmt.Fprintf(&b, "%d%d%d", players, 1, r)
	for _, c := range d.Cards {
		cardIdx := s*c.Suit + c.Rank
		b.WriteByte(base62Alphabet[(cardIdx-1)%len(base62Alphabet)])
	}
	payload := fmt.Sprintf("%s,%s,%d", b.String(), "n", d.Variant.ID)
	return "https://hanab.live/shared-replay-json/" + dashJoin(payload, dashInterval)
}

// dashJoin inserts a "-" every n characters of s.
func dashJoin(s string, n int) string {
	if len(s) <= n {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i += n {
		if i > 0 {
			b.WriteByte('-')
		}
		end := i + n
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}
