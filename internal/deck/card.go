package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

// Suits in deck build order
const (
	Clubs Suit = iota
	Spades
	Diamonds
	Hearts
)

// Suits lists every suit in build order
var Suits = [4]Suit{Clubs, Spades, Diamonds, Hearts}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	default:
		return "?"
	}
}

// Letter returns the single ASCII letter for the suit (C, S, D, H)
func (s Suit) Letter() byte {
	switch s {
	case Clubs:
		return 'C'
	case Spades:
		return 'S'
	case Diamonds:
		return 'D'
	case Hearts:
		return 'H'
	default:
		return '?'
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Hearts
}

// Rank represents a card rank, 1 (ace) through 13 (king)
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

const rankLetters = "A23456789TJQK"

// String returns the string representation of a rank
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankLetters[r-1])
}

// Valid reports whether r is within 1..13
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Card represents a playing card. Cards are plain values and compare with ==.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the display form of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the two-letter ASCII form of a card (e.g., "AS", "TH")
func (c Card) Code() string {
	return c.Rank.String() + string(c.Suit.Letter())
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Valid reports whether both suit and rank are in range
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// Index returns the position of the card in an unshuffled deck (0-51)
func (c Card) Index() int {
	return int(c.Suit)*13 + int(c.Rank) - 1
}

// ParseCard parses a two-letter code such as "AS", "th" or "10d" into a Card
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}

	idx := strings.IndexByte(rankLetters, s[0])
	if idx < 0 {
		return Card{}, fmt.Errorf("invalid rank: %c", s[0])
	}

	var suit Suit
	switch s[1] {
	case 'C':
		suit = Clubs
	case 'S':
		suit = Spades
	case 'D':
		suit = Diamonds
	case 'H':
		suit = Hearts
	default:
		return Card{}, fmt.Errorf("invalid suit: %c", s[1])
	}

	return NewCard(suit, Rank(idx+1)), nil
}

// ParseCards parses a whitespace or comma separated list of card codes
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins cards with a separator using their display form
func FormatCards(cards []Card, sep string) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}
