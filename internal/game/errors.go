package game

import (
	"errors"
)

var (
	// ErrDeckOrPileEmpty means a deal asked for more cards than the deck holds
	ErrDeckOrPileEmpty = errors.New("deck or pile empty")

	// ErrUnknownIntent means there were no pending interactions to classify
	ErrUnknownIntent = errors.New("unknown intent")

	// ErrIllegalAction is matched by every *IllegalActionError
	ErrIllegalAction = errors.New("illegal action")

	// ErrPartialIntent is matched by every *PartialIntentError
	ErrPartialIntent = errors.New("partial intent")

	ErrOtherPlayersCards = errors.New("card belongs to another player")
	ErrCardNotInHand     = errors.New("card is not in the current player's hand")
	ErrNotAPile          = errors.New("target is not a table pile")
	ErrNotYourTurn       = errors.New("no player has the turn")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrAlreadyStarted    = errors.New("game already started")
	ErrNoPlayers         = errors.New("at least one player is required")
)

// IllegalActionError is returned when an interaction sequence cannot be
// turned into any move. The pending interactions have already been cleared.
type IllegalActionError struct {
	Reason string
}

func (e *IllegalActionError) Error() string {
	return "illegal action: " + e.Reason
}

func (e *IllegalActionError) Is(target error) bool {
	return target == ErrIllegalAction
}

// PartialIntentError is not a failure: the sequence so far is valid and
// one more interaction is expected. Hint is meant for the player.
type PartialIntentError struct {
	Hint string
}

func (e *PartialIntentError) Error() string {
	return "partial intent: " + e.Hint
}

func (e *PartialIntentError) Is(target error) bool {
	return target == ErrPartialIntent
}

// IsPartial reports whether err signals an incomplete click sequence
func IsPartial(err error) bool {
	return errors.Is(err, ErrPartialIntent)
}

// PartialHint extracts the hint of a partial intent, or "" for other errors
func PartialHint(err error) string {
	var pe *PartialIntentError
	if errors.As(err, &pe) {
		return pe.Hint
	}
	return ""
}
