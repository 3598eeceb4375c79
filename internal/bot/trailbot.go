package bot

import (
	"github.com/charmbracelet/log"
	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/game"
)

// TrailBot always trails its lowest card onto the table
type TrailBot struct {
	logger *log.Logger
}

// NewTrailBot creates a new TrailBot instance
func NewTrailBot(logger *log.Logger) *TrailBot {
	return &TrailBot{logger: logger.WithPrefix("trailbot")}
}

func (b *TrailBot) Clicks(view game.View) []game.Interaction {
	me, ok := view.Current()
	if !ok || len(me.Cards) == 0 {
		return nil
	}
	low := me.Cards[0]
	for _, ref := range me.Cards[1:] {
		if lower(ref.Card, low.Card) {
			low = ref
		}
	}
	b.logger.Debug("Trailing", "player", me.Name, "card", low.Card)
	return []game.Interaction{game.Click(low.Pile, low.Card), game.TableClick()}
}

func lower(a, b deck.Card) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Suit < b.Suit
}
