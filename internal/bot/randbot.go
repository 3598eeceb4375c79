package bot

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/kasino/internal/game"
)

// RandBot plays a uniformly random hand card onto a random pile or the
// table. With a misclick rate set it sometimes aims at an opponent's hand
// or inspects a pile first.
type RandBot struct {
	rng      *rand.Rand
	logger   *log.Logger
	misclick float64
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger.WithPrefix("randbot")}
}

// WithMisclick sets the probability of a wasted or illegal click sequence
func (r *RandBot) WithMisclick(p float64) *RandBot {
	r.misclick = p
	return r
}

func (r *RandBot) Clicks(view game.View) []game.Interaction {
	me, ok := view.Current()
	if !ok || len(me.Cards) == 0 {
		return nil
	}
	pick := me.Cards[r.rng.IntN(len(me.Cards))]
	first := game.Click(pick.Pile, pick.Card)

	if r.misclick > 0 && r.rng.Float64() < r.misclick {
		if clicks := r.misclickFrom(view, first); clicks != nil {
			return clicks
		}
	}

	target := r.rng.IntN(len(view.Piles) + 1)
	if target == len(view.Piles) {
		r.logger.Debug("Dropping", "player", me.Name, "card", pick.Card)
		return []game.Interaction{first, game.TableClick()}
	}
	pile := view.Piles[target]
	top, ok := pile.Top()
	if !ok {
		return []game.Interaction{first, game.TableClick()}
	}
	r.logger.Debug("Building", "player", me.Name, "card", pick.Card, "pile", pile.Handle.Short())
	return []game.Interaction{first, game.Click(pile.Handle, top)}
}

func (r *RandBot) misclickFrom(view game.View, first game.Interaction) []game.Interaction {
	if r.rng.IntN(2) == 0 && len(view.Piles) > 0 {
		pile := view.Piles[r.rng.IntN(len(view.Piles))]
		if top, ok := pile.Top(); ok {
			return []game.Interaction{game.Click(pile.Handle, top)}
		}
	}
	for i := range view.Players {
		opp := view.Players[(view.Turn+1+i)%len(view.Players)]
		if opp.ID != view.Turn && len(opp.Cards) > 0 {
			return []game.Interaction{first, game.Click(opp.Hand, opp.Cards[0].Card)}
		}
	}
	return nil
}
