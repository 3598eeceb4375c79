package game

import (
	"slices"

	"github.com/lox/kasino/internal/deck"
)

// ResolverState is the position of the click state machine
type ResolverState int

const (
	// Idle means no interactions are pending
	Idle ResolverState = iota
	// AwaitingSecondClick means a card from the current player's hand is
	// selected and a target is expected
	AwaitingSecondClick
	// Resolved means the pending sequence maps to an intent
	Resolved
	// Rejected means the sequence is malformed and will be discarded
	Rejected
)

func (s ResolverState) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingSecondClick:
		return "awaiting-second-click"
	case Resolved:
		return "resolved"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

const (
	selectHint    = "click a table pile to build, or the table to drop"
	unknownAction = "yet unknown action"
	maxPending    = 2
)

// Resolver turns a sequence of clicks into an Intent. Only the most recent
// click decides whether the sequence is complete; a card from the current
// player's hand always waits for a target.
type Resolver struct {
	game     *Game
	pending  []Interaction
	state    ResolverState
	selected deck.Card
	intent   Intent
}

// NewResolver creates a resolver that consults g for hand ownership
func NewResolver(g *Game) *Resolver {
	return &Resolver{game: g}
}

// Push appends an interaction to the pending log and moves the state machine
func (r *Resolver) Push(in Interaction) {
	prev := r.state
	r.pending = append(r.pending, in)

	switch {
	case len(r.pending) > maxPending:
		r.state = Rejected
	case in.Kind == ClickCard && r.game.InCurrentHand(in.Card):
		r.selected = in.Card
		r.state = AwaitingSecondClick
	case len(r.pending) == maxPending && prev == AwaitingSecondClick:
		r.state = Resolved
		if in.Kind == ClickTable {
			r.intent = Intent{Kind: IntentDrop, Card: r.selected}
		} else {
			r.intent = Intent{Kind: IntentBuild, Card: r.selected, Pile: in.Pile}
		}
	default:
		r.state = Resolved
		r.intent = inspect(in)
	}
}

func inspect(in Interaction) Intent {
	if in.Kind == ClickTable {
		return Intent{Kind: IntentInspect}
	}
	return Intent{Kind: IntentInspect, Card: in.Card, Pile: in.Pile}
}

// TryToIntent classifies the pending log. A partial sequence keeps the log;
// success and rejection clear it.
func (r *Resolver) TryToIntent() (Intent, error) {
	switch {
	case r.state == Rejected:
		r.Reset()
		return Intent{}, &IllegalActionError{Reason: unknownAction}
	case len(r.pending) == 0:
		return Intent{}, ErrUnknownIntent
	case r.state == AwaitingSecondClick:
		return Intent{}, &PartialIntentError{Hint: selectHint}
	}

	intent := r.intent
	r.Reset()
	return intent, nil
}

// Reset drops every pending interaction
func (r *Resolver) Reset() {
	r.pending = r.pending[:0]
	r.state = Idle
	r.selected = deck.Card{}
	r.intent = Intent{}
}

// State returns the current state of the click state machine
func (r *Resolver) State() ResolverState {
	return r.state
}

// Pending returns a copy of the pending interactions
func (r *Resolver) Pending() []Interaction {
	return slices.Clone(r.pending)
}

// Selected returns the hand card awaiting a target
func (r *Resolver) Selected() (deck.Card, bool) {
	return r.selected, r.state == AwaitingSecondClick
}

// Hint describes what the player should do next, or "" when nothing is
// pending
func (r *Resolver) Hint() string {
	if r.state == AwaitingSecondClick {
		return selectHint
	}
	return ""
}
