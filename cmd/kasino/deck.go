package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/randutil"
)

var (
	redCard   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	blackCard = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).Bold(true)
)

type DeckCmd struct {
	Seed      int64 `help:"Shuffle seed (0 for random)" default:"0"`
	NoShuffle bool  `help:"Print the standard build order"`
	Codes     bool  `help:"Print ASCII codes (AS, TH) instead of suit symbols"`
}

func (c *DeckCmd) Run(g *Globals) error {
	var cards []deck.Card
	if c.NoShuffle {
		cards = deck.Build(nil)
	} else {
		seed := c.Seed
		if seed == 0 {
			seed = randutil.Seed(nil)
		}
		cards = deck.Build(randutil.New(seed))
		fmt.Println(labelStyle.Render("Seed") + valueStyle.Render(fmt.Sprintf("%d", seed)))
	}
	fmt.Print(renderDeck(cards, c.Codes))
	return nil
}

// renderDeck prints cards thirteen to a row in deal order
func renderDeck(cards []deck.Card, codes bool) string {
	var b strings.Builder
	for i, card := range cards {
		text := card.String()
		if codes {
			text = card.Code()
		}
		style := blackCard
		if card.IsRed() {
			style = redCard
		}
		b.WriteString(style.Render(text))
		if (i+1)%13 == 0 || i == len(cards)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}
