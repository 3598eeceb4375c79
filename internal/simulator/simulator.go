// Package simulator plays many seeded bot games concurrently and checks
// that every game conserves the deck.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/kasino/internal/bot"
	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/game"
	"github.com/lox/kasino/internal/randutil"
	"github.com/lox/kasino/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// maxTurnsPerCard bounds the turns a game may take before it counts as
// stalled; misclicks waste turns without playing a card.
const maxTurnsPerCard = 20

// Config holds configuration for running simulations
type Config struct {
	Games    int
	Players  int
	Seed     int64
	Parallel int
	Bot      string // a bot kind, or "mixed"
	Misclick float64
	Timeout  time.Duration // per game; zero means no limit
	Logger   *log.Logger
}

// Simulator runs kasino game simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Parallel < 1 {
		config.Parallel = 1
	}
	if config.Bot == "" {
		config.Bot = "rand"
	}
	return &Simulator{config: config}
}

// Run plays every game and aggregates the results. Game i uses seed
// Seed+i, so a failing game can be replayed on its own.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Games < 1 {
		return nil, fmt.Errorf("invalid games count: %d", s.config.Games)
	}
	if s.config.Players < 1 {
		return nil, fmt.Errorf("invalid player count: %d", s.config.Players)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)

	results := make([]statistics.GameResult, s.config.Games)
	for i := range s.config.Games {
		seed := s.config.Seed + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playGameWithTimeout(ctx, seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, result := range results {
		stats.Add(result)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	s.config.Logger.Info("Simulation complete", "games", stats.Games, "meanMoves", stats.Mean(), "rejected", stats.Rejected)
	return stats, nil
}

func (s *Simulator) playGameWithTimeout(ctx context.Context, seed int64) (statistics.GameResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	return s.PlayGame(ctx, seed)
}

// PlayGame plays one game from seed to the end
func (s *Simulator) PlayGame(ctx context.Context, seed int64) (statistics.GameResult, error) {
	logger := s.config.Logger.With("seed", seed)
	rng := randutil.New(seed)

	names := make([]string, s.config.Players)
	bots := make([]bot.Bot, s.config.Players)
	for i := range names {
		names[i] = fmt.Sprintf("Bot%d", i+1)
		kind := s.config.Bot
		if kind == "mixed" {
			kind = bot.Kinds[i%len(bot.Kinds)]
		}
		b, err := bot.New(kind, rng, logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
		if rb, ok := b.(*bot.RandBot); ok && s.config.Misclick > 0 {
			rb.WithMisclick(s.config.Misclick)
		}
		bots[i] = b
	}

	session, err := game.NewSession(game.SessionConfig{
		Players: names,
		Seed:    &seed,
		Shuffle: true,
		Logger:  logger,
	})
	if err != nil {
		return statistics.GameResult{}, err
	}
	if err := session.Start(); err != nil {
		return statistics.GameResult{}, fmt.Errorf("start: %w", err)
	}

	result := statistics.GameResult{Seed: seed, Players: s.config.Players}
	for turns := 0; ; turns++ {
		view := session.Snapshot()
		if !view.State.InProgress() {
			break
		}
		if turns > deck.Size*maxTurnsPerCard {
			return result, fmt.Errorf("game stalled after %d turns\n%s", turns, session.Dump())
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		out, err := bot.Play(session, bots[view.Turn])
		switch {
		case isRuleViolation(err):
			result.Rejected++
			logger.Debug("Move rejected", "player", names[view.Turn], "error", err)
		case err != nil:
			return result, err
		case out.Applied:
			result.Moves++
		}
		session.Cancel()
	}

	if err := session.Validate(); err != nil {
		return result, err
	}

	view := session.Snapshot()
	result.Rounds = view.Rounds
	result.Piles = len(view.Piles)
	result.DeckLeft = view.DeckSize
	for _, pile := range view.Piles {
		result.Cards += len(pile.Cards)
	}
	return result, nil
}

func isRuleViolation(err error) bool {
	return errors.Is(err, game.ErrOtherPlayersCards) ||
		errors.Is(err, game.ErrNotAPile) ||
		errors.Is(err, game.ErrCardNotInHand) ||
		errors.Is(err, game.ErrIllegalAction)
}

// RunSimulation is a convenience function for running simulations
func RunSimulation(ctx context.Context, games, players int, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	sim := New(Config{
		Games:    games,
		Players:  players,
		Seed:     seed,
		Parallel: 4,
		Logger:   logger,
	})
	return sim.Run(ctx)
}
