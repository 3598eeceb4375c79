package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/kasino/internal/config"
	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/simulator"
	"github.com/lox/kasino/internal/statistics"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("kasino"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestParseCommands(t *testing.T) {
	cli, ctx := parse(t)
	assert.Equal(t, "play", ctx.Command())
	assert.Equal(t, "kasino.hcl", cli.Config)
	assert.Equal(t, 600*time.Millisecond, cli.Play.BotDelay)

	cli, ctx = parse(t, "simulate", "-n", "50", "-p", "3", "--bot", "mixed", "--no-color")
	assert.Equal(t, "simulate", ctx.Command())
	assert.Equal(t, 50, cli.Simulate.Games)
	assert.Equal(t, 3, cli.Simulate.Players)
	assert.Equal(t, "mixed", cli.Simulate.Bot)
	assert.True(t, cli.NoColor)

	cli, ctx = parse(t, "deck", "--seed", "7", "--codes")
	assert.Equal(t, "deck", ctx.Command())
	assert.Equal(t, int64(7), cli.Deck.Seed)
	assert.True(t, cli.Deck.Codes)
}

func TestParseRejectsUnknownBot(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"simulate", "--bot", "shark"})
	assert.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kasino.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
player "Alice" {}
player "Bob" { bot = true }
`), 0o644))

	cfg, err := loadConfig(&Globals{Config: path, LogLevel: "debug"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"Alice", "Bob"}, cfg.PlayerNames())

	_, err = loadConfig(&Globals{Config: path, LogLevel: "loud"})
	assert.ErrorContains(t, err, "invalid config")
}

func TestPlayers(t *testing.T) {
	cfg := config.DefaultConfig()

	players, err := (&PlayCmd{}).players(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.Players, players)

	players, err = (&PlayCmd{Bots: 3}).players(cfg)
	require.NoError(t, err)
	require.Len(t, players, 4)
	assert.False(t, players[0].Bot)
	assert.Equal(t, "Bot3", players[3].Name)

	_, err = (&PlayCmd{Bots: 12}).players(cfg)
	assert.Error(t, err)
}

func TestRenderDeck(t *testing.T) {
	out := renderDeck(deck.Build(nil), true)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "AC 2C 3C 4C 5C 6C 7C 8C 9C TC JC QC KC", lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "AH 2H"))

	assert.Contains(t, renderDeck(deck.MustParseCards("AS"), false), "A♠")
}

func TestRenderSummary(t *testing.T) {
	cfg := simulator.Config{Games: 10, Players: 2, Seed: 1, Bot: "rand", Parallel: 2}
	stats, err := simulator.New(cfg).Run(context.Background())
	require.NoError(t, err)

	out := renderSummary(cfg, stats, time.Second)
	assert.Contains(t, out, "kasino simulation")
	assert.Contains(t, out, "10 (2 players, rand bots)")
	assert.Contains(t, out, "48.0")
	assert.Contains(t, out, "conserved all 52 cards")
}

func TestWriteReport(t *testing.T) {
	cfg := simulator.Config{Games: 3, Players: 3, Seed: 7, Bot: "trail", Parallel: 1}
	stats, err := simulator.New(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, stats.Results, 3)

	path := filepath.Join(t.TempDir(), "report.jsonl")
	require.NoError(t, writeReport(path, stats.Results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)

	var first statistics.GameResult
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, int64(7), first.Seed)
	assert.Equal(t, 3, first.Players)
	assert.Equal(t, 52, first.Cards+first.DeckLeft)
}
