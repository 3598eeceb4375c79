package deck

import (
	rand "math/rand/v2"

	"github.com/lox/kasino/internal/randutil"
)

// Size is the number of cards in a standard deck
const Size = 52

// Standard returns the 52 cards in build order: clubs, spades, diamonds,
// hearts, each ace through king.
func Standard() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Build returns a full deck shuffled with rng. A nil rng disables shuffling
// and yields the Standard order.
func Build(rng *rand.Rand) []Card {
	cards := Standard()
	randutil.Shuffle(rng, cards)
	return cards
}

// Validate checks that cards form exactly one standard deck: 52 valid cards
// with every (suit, rank) pair present once.
func Validate(cards []Card) error {
	if len(cards) != Size {
		return &CountError{Got: len(cards)}
	}
	var seen [Size]bool
	for _, c := range cards {
		if !c.Valid() {
			return &InvalidCardError{Card: c}
		}
		if seen[c.Index()] {
			return &DuplicateCardError{Card: c}
		}
		seen[c.Index()] = true
	}
	return nil
}
