package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/kasino/internal/bot"
	"github.com/lox/kasino/internal/config"
	"github.com/lox/kasino/internal/game"
	"github.com/lox/kasino/internal/randutil"
	"github.com/lox/kasino/internal/tui"
)

type PlayCmd struct {
	Seed      int64         `help:"Shuffle seed (0 uses the config file or a random seed)" default:"0"`
	Bots      int           `short:"b" help:"Play against N random bots instead of the configured players" default:"0"`
	BotDelay  time.Duration `help:"Pause before each bot move" default:"600ms"`
	NoShuffle bool          `help:"Deal from an unshuffled deck"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}

	players, err := c.players(cfg)
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.LogLevel(),
		Prefix:          "kasino",
	})

	seed := cfg.Seed()
	if c.Seed != 0 {
		seed = &c.Seed
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	session, err := game.NewSession(game.SessionConfig{
		Players: names,
		Seed:    seed,
		Shuffle: cfg.Shuffle() && !c.NoShuffle,
		Logger:  logger,
		OnGameEnd: func(g *game.Game) {
			logger.Info("Final table", "state", g.String())
		},
	})
	if err != nil {
		return err
	}
	logger.Info("Starting game", "seed", session.Seed(), "players", len(names))

	opts := tui.Options{Bots: map[int]bot.Bot{}, BotDelay: c.BotDelay}
	rng := randutil.New(session.Seed())
	for i, p := range players {
		if !p.Bot {
			opts.Humans = append(opts.Humans, i)
			continue
		}
		b, err := bot.New(p.Strategy, rng, logger)
		if err != nil {
			return err
		}
		opts.Bots[i] = b
	}

	model := tui.New(session, logger, opts)
	if err := session.Start(); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()
	return tui.Run(ctx, model)
}

// players returns the seats to play, either from config or --bots
func (c *PlayCmd) players(cfg *config.Config) ([]config.PlayerConfig, error) {
	if c.Bots == 0 {
		return cfg.Players, nil
	}
	if c.Bots < 1 || c.Bots > config.MaxPlayers-1 {
		return nil, fmt.Errorf("bots must be between 1 and %d", config.MaxPlayers-1)
	}
	players := []config.PlayerConfig{{Name: "You"}}
	for i := range c.Bots {
		players = append(players, config.PlayerConfig{
			Name:     fmt.Sprintf("Bot%d", i+1),
			Bot:      true,
			Strategy: config.DefaultStrategy,
		})
	}
	return players, nil
}
