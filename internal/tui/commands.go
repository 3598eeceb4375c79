package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/game"
)

const commandHelp = "type a card to select it (AH), a pile number to play onto it, t to drop on the table"

// parseCommand translates typed input into the clicks it stands for. Each
// token is one click: a card code, a 1-based pile number, or "t" for the
// table.
func parseCommand(input string, view game.View) ([]game.Interaction, error) {
	var clicks []game.Interaction
	for _, token := range strings.Fields(input) {
		in, err := parseToken(token, view)
		if err != nil {
			return nil, err
		}
		clicks = append(clicks, in)
	}
	return clicks, nil
}

func parseToken(token string, view game.View) (game.Interaction, error) {
	switch strings.ToLower(token) {
	case "t", "table", "drop":
		return game.TableClick(), nil
	}

	if n, err := strconv.Atoi(token); err == nil {
		if n < 1 || n > len(view.Piles) {
			return game.Interaction{}, fmt.Errorf("no pile %d, the table has %d", n, len(view.Piles))
		}
		pile := view.Piles[n-1]
		top, ok := pile.Top()
		if !ok {
			return game.Interaction{}, fmt.Errorf("pile %d is empty", n)
		}
		return game.Click(pile.Handle, top), nil
	}

	card, err := deck.ParseCard(token)
	if err != nil {
		return game.Interaction{}, fmt.Errorf("%q is not a card, pile or table: %w", token, err)
	}
	if me, ok := view.Current(); ok {
		for _, ref := range me.Cards {
			if ref.Card == card {
				return game.Click(ref.Pile, ref.Card), nil
			}
		}
	}
	for _, pile := range view.Piles {
		for _, c := range pile.Cards {
			if c == card {
				return game.Click(pile.Handle, c), nil
			}
		}
	}
	return game.Interaction{}, fmt.Errorf("%s is not in your hand or on the table", card)
}
