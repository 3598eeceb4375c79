package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" help:"Path to the HCL config file" default:"kasino.hcl"`
	LogLevel string `help:"Log level (debug, info, warn, error); overrides the config file" placeholder:"LEVEL"`
	NoColor  bool   `help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play an interactive game in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play many bot games concurrently and check card conservation"`
	Deck     DeckCmd          `cmd:"" help:"Print a built deck"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kasino"),
		kong.Description("Kasino card game engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
