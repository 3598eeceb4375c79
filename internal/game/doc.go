// Package game implements the kasino rules engine: dealing, round
// progression and the resolution of player clicks into moves.
//
// The main types are Session, Game and Resolver. A Session owns the
// registry that holds every card collection, the Game that deals and tracks
// turns, and the Resolver that turns a sequence of clicks into an Intent.
//
// # Basic Usage
//
//	s, err := game.NewSession(game.SessionConfig{
//	    Players: []string{"Alice", "Bob"},
//	    Seed:    &seed,
//	    Shuffle: true,
//	})
//	if err := s.Start(); err != nil {
//	    return err
//	}
//	view := s.Snapshot()
//	card := view.Players[0].Cards[0]
//	_, err = s.Click(game.Click(card.Pile, card.Card))
//	if game.IsPartial(err) {
//	    // one more click expected
//	}
//	_, err = s.Click(game.TableClick())
//
// # Deterministic Testing
//
// Pass a seed (or Shuffle: false) in SessionConfig to reproduce a deal, and a
// quartz mock clock to pin event timestamps:
//
//	clock := quartz.NewMock(t)
//	s, _ := game.NewSession(game.SessionConfig{Players: names, Seed: &seed, Clock: clock})
//
// # Architecture
//
//   - registry.Registry: owns every card collection, addressed by handle
//   - Game: deals from the draw deck, creates table piles, moves the turn
//     and runs the round state machine (NotStarted, Setup, Round, LastRound,
//     Ended)
//   - Resolver: explicit click state machine (Idle, AwaitingSecondClick,
//     Resolved, Rejected)
//   - EventBus: notifies the renderer of every state change
//
// Game itself is not safe for concurrent mutation; Session serialises
// writers and lets renderers read snapshots concurrently.
package game
