package deck

import (
	"testing"

	"github.com/lox/kasino/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUnshuffledOrder(t *testing.T) {
	cards := Build(nil)
	require.Len(t, cards, Size)

	i := 0
	for _, suit := range []Suit{Clubs, Spades, Diamonds, Hearts} {
		for rank := 1; rank <= 13; rank++ {
			assert.Equal(t, NewCard(suit, Rank(rank)), cards[i], "position %d", i)
			assert.Equal(t, i, cards[i].Index())
			i++
		}
	}
}

func TestBuildShuffledIsFullDeck(t *testing.T) {
	cards := Build(randutil.New(42))
	require.NoError(t, Validate(cards))
	assert.NotEqual(t, Standard(), cards, "seeded shuffle should reorder the deck")

	again := Build(randutil.New(42))
	assert.Equal(t, cards, again, "same seed must yield same order")
}

func TestValidate(t *testing.T) {
	t.Run("short deck", func(t *testing.T) {
		err := Validate(Standard()[:51])
		var ce *CountError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, 51, ce.Got)
	})

	t.Run("duplicate", func(t *testing.T) {
		cards := Standard()
		cards[1] = cards[0]
		var de *DuplicateCardError
		require.ErrorAs(t, Validate(cards), &de)
		assert.Equal(t, NewCard(Clubs, Ace), de.Card)
	})

	t.Run("invalid", func(t *testing.T) {
		cards := Standard()
		cards[5] = Card{Suit: Clubs, Rank: 0}
		var ie *InvalidCardError
		require.ErrorAs(t, Validate(cards), &ie)
	})
}
