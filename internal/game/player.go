package game

import (
	"fmt"

	"github.com/lox/kasino/internal/registry"
)

// Player is a seat at the game. The hand lives in the registry; the handle
// never changes once the player is created.
type Player struct {
	ID   int
	Name string
	Hand registry.Handle
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (#%d)", p.Name, p.ID)
}
