package game

import (
	"fmt"
	"strings"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowDeal    bool   // Include per-player deal lines
	Perspective string // Player name for personalized formatting
}

// EventFormatter turns game events into log lines
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders event as one line; it returns "" for events the options
// hide
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		return fmt.Sprintf("Game started: %s (%d cards in deck)", strings.Join(e.Players, ", "), e.DeckLeft)
	case CardsDealtEvent:
		if !ef.opts.ShowDeal {
			return ""
		}
		return fmt.Sprintf("%s is dealt %d cards (%d left)", e.Player, e.Count, e.DeckLeft)
	case PileCreatedEvent:
		return fmt.Sprintf("Pile %d: %s", e.Position+1, e.Card)
	case CardPlayedEvent:
		switch e.Kind {
		case IntentDrop:
			return fmt.Sprintf("%s trails %s", e.Player, e.Card)
		case IntentBuild:
			return fmt.Sprintf("%s builds %s", e.Player, e.Card)
		default:
			return fmt.Sprintf("%s plays %s", e.Player, e.Card)
		}
	case TurnChangeEvent:
		if e.Player == ef.opts.Perspective {
			return "Your turn"
		}
		return fmt.Sprintf("%s to play", e.Player)
	case RoundEndEvent:
		return fmt.Sprintf("Round %d dealt, %d cards left", e.Round, e.DeckLeft)
	case LastRoundEvent:
		if e.DeckLeft > 0 {
			return fmt.Sprintf("Last round (%d cards stay in the deck)", e.DeckLeft)
		}
		return "Last round"
	case GameEndEvent:
		return fmt.Sprintf("Game over after %d rounds, %d piles on the table", e.Rounds, e.Piles)
	default:
		return string(event.EventType())
	}
}
