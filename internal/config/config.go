// Package config loads the kasino HCL configuration file.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/kasino/internal/bot"
)

const (
	// MinPlayers is the smallest table the rules make sense for
	MinPlayers = 2
	// MaxPlayers is the largest table setup can deal: four cards each plus
	// four table cards from 52
	MaxPlayers = 12

	DefaultLogLevel = "info"
	DefaultLogFile  = "kasino.log"
	DefaultStrategy = "rand"
)

// Config represents the complete kasino configuration
type Config struct {
	Game    *GameSettings  `hcl:"game,block"`
	Log     *LogSettings   `hcl:"log,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// GameSettings controls dealing
type GameSettings struct {
	Seed    *int64 `hcl:"seed,optional"`
	Shuffle *bool  `hcl:"shuffle,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// PlayerConfig defines one seat at the table
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Bot      bool   `hcl:"bot,optional"`
	Strategy string `hcl:"strategy,optional"`
}

// DefaultConfig returns the configuration used when no file exists: one
// human against one random bot
func DefaultConfig() *Config {
	shuffle := true
	return &Config{
		Game: &GameSettings{Shuffle: &shuffle},
		Log:  &LogSettings{Level: DefaultLogLevel, File: DefaultLogFile},
		Players: []PlayerConfig{
			{Name: "You"},
			{Name: "Bot", Bot: true, Strategy: DefaultStrategy},
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.Shuffle == nil {
		c.Game.Shuffle = defaults.Game.Shuffle
	}
	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
	if len(c.Players) == 0 {
		c.Players = defaults.Players
	}
	for i := range c.Players {
		if c.Players[i].Bot && c.Players[i].Strategy == "" {
			c.Players[i].Strategy = DefaultStrategy
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if n := len(c.Players); n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("player count must be between %d and %d, got %d", MinPlayers, MaxPlayers, n)
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player %q", p.Name)
		}
		seen[p.Name] = true
		if p.Bot && !slices.Contains(bot.Kinds, p.Strategy) {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
	}

	if c.Log != nil {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
		}
	}
	return nil
}

// PlayerNames returns the seat names in order
func (c *Config) PlayerNames() []string {
	names := make([]string, len(c.Players))
	for i, p := range c.Players {
		names[i] = p.Name
	}
	return names
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	if c.Log == nil {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Shuffle reports whether the deck is shuffled before dealing
func (c *Config) Shuffle() bool {
	return c.Game == nil || c.Game.Shuffle == nil || *c.Game.Shuffle
}

// Seed returns the configured seed, or nil for a random one
func (c *Config) Seed() *int64 {
	if c.Game == nil {
		return nil
	}
	return c.Game.Seed
}
