package deck

import "fmt"

// CountError reports a card set that is not 52 cards
type CountError struct {
	Got int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("expected %d cards, found %d", Size, e.Got)
}

// DuplicateCardError reports a card present more than once
type DuplicateCardError struct {
	Card Card
}

func (e *DuplicateCardError) Error() string {
	return fmt.Sprintf("duplicate card %s", e.Card.Code())
}

// InvalidCardError reports a card with an out-of-range suit or rank
type InvalidCardError struct {
	Card Card
}

func (e *InvalidCardError) Error() string {
	return fmt.Sprintf("invalid card suit=%d rank=%d", e.Card.Suit, e.Card.Rank)
}
