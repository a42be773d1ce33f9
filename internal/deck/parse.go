package deck

import (
	"fmt"
	"strings"

	"github.com/lox/hanabi-infeasible/internal/variant"
)

// chromaticSentinel is the suit name reported when a token matches no
// known suit. Callers should treat it as a parse error.
const chromaticSentinel = "Chromatic"

// ParseError reports an unrecognised card token.
type ParseError struct {
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("deck: unrecognised card token %q (defaults to %s)", e.Token, chromaticSentinel)
}

// ParseDeckString parses a line of whitespace- or comma-separated card
// tokens into a Deck for the given variant. Each token is a suit
// identifier (abbreviation, id, or full name, case-insensitive) with a
// rank digit 1..5 allowed at any position in the token.
func ParseDeckString(v *variant.Spec, line string) (*Deck, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})

	cards := make([]Card, 0, len(fields))
	for _, word := range fields {
		card, err := parseToken(v, word)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	d := &Deck{Variant: v}
	d.SetCards(cards)
	return d, nil
}

func parseToken(v *variant.Spec, word string) (Card, error) {
	rank := 0
	suitToken := make([]byte, 0, len(word))
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c >= '1' && c <= '5' && rank == 0 {
			rank = int(c - '0')
			continue
		}
		suitToken = append(suitToken, c)
	}

	suitIndex := v.SuitIndex(string(suitToken))
	if suitIndex == -1 {
		return Card{}, &ParseError{Token: word}
	}
	return NewCard(suitIndex, rank), nil
}
