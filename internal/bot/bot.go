// Package bot provides computer players. A bot looks at a session snapshot
// and answers with the clicks a human would make.
package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/kasino/internal/game"
)

// Bot chooses the clicks for the current player's turn
type Bot interface {
	Clicks(view game.View) []game.Interaction
}

// Kinds lists the bot names accepted by New
var Kinds = []string{"rand", "trail"}

// New creates a bot by name
func New(kind string, rng *rand.Rand, logger *log.Logger) (Bot, error) {
	switch kind {
	case "rand":
		return NewRandBot(rng, logger), nil
	case "trail":
		return NewTrailBot(logger), nil
	default:
		return nil, fmt.Errorf("unknown bot type %q", kind)
	}
}

// Play feeds one turn of clicks to the session. Partial intents between
// clicks are expected; any other error stops the turn.
func Play(s *game.Session, b Bot) (game.Outcome, error) {
	var out game.Outcome
	for _, in := range b.Clicks(s.Snapshot()) {
		var err error
		out, err = s.Click(in)
		if err != nil && !game.IsPartial(err) {
			return out, err
		}
	}
	return out, nil
}
