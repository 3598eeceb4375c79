package game

import (
	"fmt"

	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/registry"
)

// IntentKind is the move a resolved click sequence asks for
type IntentKind int

const (
	// IntentInspect looks at a card or the table; it changes nothing and does
	// not end the turn.
	IntentInspect IntentKind = iota
	// IntentDrop trails a hand card onto the table as a new pile
	IntentDrop
	// IntentBuild places a hand card on top of an existing table pile
	IntentBuild
)

func (k IntentKind) String() string {
	switch k {
	case IntentInspect:
		return "inspect"
	case IntentDrop:
		return "drop"
	case IntentBuild:
		return "build"
	default:
		return "unknown"
	}
}

// Intent is a completed action ready for Game.Apply. Card is the hand card
// for drop and build, the inspected card otherwise. Pile is the target pile
// for build and the inspected collection for inspect.
type Intent struct {
	Kind IntentKind
	Card deck.Card
	Pile registry.Handle
}

// Mutates reports whether applying the intent changes the game
func (in Intent) Mutates() bool {
	return in.Kind == IntentDrop || in.Kind == IntentBuild
}

func (in Intent) String() string {
	switch in.Kind {
	case IntentDrop:
		return fmt.Sprintf("drop %s", in.Card)
	case IntentBuild:
		return fmt.Sprintf("build %s on %s", in.Card, in.Pile.Short())
	default:
		if in.Pile.IsNil() {
			return "inspect table"
		}
		return fmt.Sprintf("inspect %s", in.Card)
	}
}
