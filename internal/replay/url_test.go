package replay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/hanabi-infeasible/internal/deck"
	"github.com/lox/hanabi-infeasible/internal/variant"
)

func TestURLHasExpectedPrefixAndDashChunking(t *testing.T) {
	v := variant.NoVariant()
	d := deck.New(v)
	d.Shuffle("replay-seed")

	url := URL(d, 2)
	require.True(t, strings.HasPrefix(url, "https://hanab.live/shared-replay-json/"))

	body := strings.TrimPrefix(url, "https://hanab.live/shared-replay-json/")
	chunks := strings.Split(body, "-")
	for i, c := range chunks {
		if i < len(chunks)-1 {
			require.Len(t, c, dashInterval)
		} else {
			require.LessOrEqual(t, len(c), dashInterval)
		}
	}
}

func TestURLIsDeterministicForSameDeck(t *testing.T) {
	v := variant.NoVariant()
	d1 := deck.New(v)
	d1.Shuffle("same-seed")
	d2 := deck.New(v)
	d2.Shuffle("same-seed")

	require.Equal(t, URL(d1, 2), URL(d2, 2))
}
