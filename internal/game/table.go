package game

import (
	"slices"

	"github.com/lox/kasino/internal/registry"
)

// Table is the ordered list of piles on the table, left to right. Piles are
// only ever appended.
type Table struct {
	piles []registry.Handle
}

// Piles returns a copy of the pile handles in table order
func (t *Table) Piles() []registry.Handle {
	return slices.Clone(t.piles)
}

// Len returns the number of piles
func (t *Table) Len() int {
	return len(t.piles)
}

// Pile returns the handle at position i
func (t *Table) Pile(i int) (registry.Handle, bool) {
	if i < 0 || i >= len(t.piles) {
		return registry.NilHandle, false
	}
	return t.piles[i], true
}

// Has reports whether h is one of the table's piles
func (t *Table) Has(h registry.Handle) bool {
	return slices.Contains(t.piles, h)
}

func (t *Table) add(h registry.Handle) {
	t.piles = append(t.piles, h)
}
