package game

import (
	"fmt"
	"time"

	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/registry"
)

// InteractionKind discriminates Interaction values
type InteractionKind int

const (
	// ClickCard is a click on a card, naming the collection it sits in
	ClickCard InteractionKind = iota
	// ClickTable is a click on free table space, the drop zone
	ClickTable
)

func (k InteractionKind) String() string {
	switch k {
	case ClickCard:
		return "click"
	case ClickTable:
		return "click-table"
	default:
		return "unknown"
	}
}

// Interaction is one input event from the renderer. Screen coordinates are
// translated into a collection handle and card before reaching the engine.
type Interaction struct {
	Kind InteractionKind
	Pile registry.Handle
	Card deck.Card
	At   time.Time
}

// Click builds a ClickCard interaction for card inside collection pile
func Click(pile registry.Handle, card deck.Card) Interaction {
	return Interaction{Kind: ClickCard, Pile: pile, Card: card}
}

// TableClick builds a ClickTable interaction
func TableClick() Interaction {
	return Interaction{Kind: ClickTable}
}

func (i Interaction) String() string {
	if i.Kind == ClickTable {
		return "click(table)"
	}
	return fmt.Sprintf("click(%s@%s)", i.Card.Code(), i.Pile.Short())
}
