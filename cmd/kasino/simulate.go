package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/kasino/internal/fileutil"
	"github.com/lox/kasino/internal/randutil"
	"github.com/lox/kasino/internal/simulator"
	"github.com/lox/kasino/internal/statistics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575")).
		Bold(true)
)

type SimulateCmd struct {
	Games    int           `short:"n" help:"Number of games to simulate" default:"1000"`
	Players  int           `short:"p" help:"Players per game" default:"2"`
	Seed     int64         `help:"Base RNG seed; game i uses seed+i (0 for random)" default:"0"`
	Parallel int           `short:"j" help:"Games to run concurrently (0 for one per CPU)" default:"0"`
	Bot      string        `help:"Bot strategy" enum:"rand,trail,mixed" default:"rand"`
	Misclick float64       `help:"Probability of a wasted or illegal click sequence" default:"0"`
	Timeout  time.Duration `help:"Per game timeout" default:"10s"`
	Report   string        `help:"Write one JSON line per game to this file" type:"path"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	level := log.WarnLevel
	if g.LogLevel != "" {
		parsed, err := log.ParseLevel(g.LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", g.LogLevel, err)
		}
		level = parsed
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "simulate"})

	seed := c.Seed
	if seed == 0 {
		seed = randutil.Seed(nil)
	}
	parallel := c.Parallel
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	cfg := simulator.Config{
		Games:    c.Games,
		Players:  c.Players,
		Seed:     seed,
		Parallel: parallel,
		Bot:      c.Bot,
		Misclick: c.Misclick,
		Timeout:  c.Timeout,
		Logger:   logger,
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	start := time.Now()
	stats, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(renderSummary(cfg, stats, time.Since(start)))

	if c.Report != "" {
		if err := writeReport(c.Report, stats.Results); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Report, "games", len(stats.Results))
	}
	return nil
}

// writeReport stores per-game results as JSON lines
func writeReport(path string, results []statistics.GameResult) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	})
}

// renderSummary formats simulation results for the terminal
func renderSummary(cfg simulator.Config, stats *statistics.Statistics, elapsed time.Duration) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render(" ♣ ♠ kasino simulation ♦ ♥ "))
	b.WriteString("\n\n")
	row("Games", fmt.Sprintf("%d (%d players, %s bots)", stats.Games, cfg.Players, cfg.Bot))
	row("Base seed", fmt.Sprintf("%d", cfg.Seed))
	row("Moves per game", fmt.Sprintf("%.1f ± %.1f (median %.0f)", stats.Mean(), stats.StdDev(), stats.Median()))
	if stats.Games > 0 {
		row("Rounds per game", fmt.Sprintf("%.1f", float64(stats.SumRounds)/float64(stats.Games)))
	}
	row("Rejected moves", fmt.Sprintf("%d", stats.Rejected))
	row("Max piles", fmt.Sprintf("%d", stats.MaxPiles))
	row("Undealt leftovers", fmt.Sprintf("%d games", stats.LeftoverGames))
	if elapsed > 0 && stats.Games > 0 {
		row("Elapsed", fmt.Sprintf("%s (%.0f games/s)", elapsed.Round(time.Millisecond), float64(stats.Games)/elapsed.Seconds()))
	}
	b.WriteString("\n")
	b.WriteString(okStyle.Render("✓ every game conserved all 52 cards"))
	return b.String()
}
