package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/lox/kasino/internal/deck"
)

var (
	// ErrUnknownHandle is wrapped by the panic raised when a handle was never
	// minted by the registry.
	ErrUnknownHandle = errors.New("registry: unknown handle")

	// ErrCardNotFound is returned by MoveCard when the source lacks the card
	ErrCardNotFound = errors.New("registry: card not found in collection")
)

type collection struct {
	mu    sync.RWMutex
	cards []deck.Card
}

// Registry maps handles to ordered card collections
type Registry struct {
	mu          sync.RWMutex
	collections map[Handle]*collection
	order       []Handle
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		collections: make(map[Handle]*collection),
	}
}

// Create stores a copy of cards as a new collection and returns its handle
func (r *Registry) Create(cards []deck.Card) Handle {
	c := &collection{cards: slices.Clone(cards)}
	if c.cards == nil {
		c.cards = []deck.Card{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	h := newHandle()
	for _, taken := r.collections[h]; taken; _, taken = r.collections[h] {
		h = newHandle()
	}
	r.collections[h] = c
	r.order = append(r.order, h)
	return h
}

// Handles returns every handle in creation order
func (r *Registry) Handles() []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Count returns the number of collections created so far
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// lookup resolves h or panics; every handle the registry returned stays valid
// for its lifetime, so a miss means the caller broke an invariant.
func (r *Registry) lookup(h Handle) *collection {
	r.mu.RLock()
	c, ok := r.collections[h]
	r.mu.RUnlock()
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnknownHandle, h))
	}
	return c
}

// Draw removes the first count cards and returns them. When fewer than count
// cards remain it returns (nil, false) and leaves the collection untouched.
func (r *Registry) Draw(h Handle, count int) ([]deck.Card, bool) {
	if count < 0 {
		panic(fmt.Sprintf("registry: negative draw count %d", count))
	}
	c := r.lookup(h)
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.takeFront(count)
}

// Append pushes cards onto the back of the collection, keeping their order
func (r *Registry) Append(h Handle, cards ...deck.Card) {
	c := r.lookup(h)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cards = append(c.cards, cards...)
}

// HasCards reports whether the collection holds at least count cards
func (r *Registry) HasCards(h Handle, count int) bool {
	return r.Len(h) >= count
}

// IsEmpty reports whether the collection holds no cards
func (r *Registry) IsEmpty(h Handle) bool {
	return !r.HasCards(h, 1)
}

// Len returns the number of cards in the collection
func (r *Registry) Len(h Handle) int {
	c := r.lookup(h)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cards)
}

// Contains reports whether card is in the collection
func (r *Registry) Contains(h Handle, card deck.Card) bool {
	c := r.lookup(h)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Contains(c.cards, card)
}

// Cards returns a copy of the collection's cards
func (r *Registry) Cards(h Handle) []deck.Card {
	c := r.lookup(h)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.cards)
}

// WithRead calls fn with the collection under a read lock. fn must not keep
// the slice or call back into the registry for the same handle.
func (r *Registry) WithRead(h Handle, fn func(cards []deck.Card)) {
	c := r.lookup(h)
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.cards)
}

// WithWrite calls fn with a pointer to the collection under the write lock.
// fn may reorder, replace or truncate the slice.
func (r *Registry) WithWrite(h Handle, fn func(cards *[]deck.Card)) {
	c := r.lookup(h)
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.cards)
}

// Move atomically draws count cards from the front of from and appends them
// to to. It returns false and changes nothing if from holds fewer cards.
func (r *Registry) Move(from, to Handle, count int) bool {
	if count < 0 {
		panic(fmt.Sprintf("registry: negative move count %d", count))
	}
	src, dst := r.lookup(from), r.lookup(to)
	if from == to {
		src.mu.RLock()
		defer src.mu.RUnlock()
		return len(src.cards) >= count
	}

	unlock := lockPair(from, src, to, dst)
	defer unlock()

	cards, ok := src.takeFront(count)
	if !ok {
		return false
	}
	dst.cards = append(dst.cards, cards...)
	return true
}

// MoveCard atomically moves one specific card from one collection to the
// back of another.
func (r *Registry) MoveCard(from, to Handle, card deck.Card) error {
	src, dst := r.lookup(from), r.lookup(to)
	if from == to {
		src.mu.RLock()
		defer src.mu.RUnlock()
		if !slices.Contains(src.cards, card) {
			return fmt.Errorf("%w: %s", ErrCardNotFound, card.Code())
		}
		return nil
	}

	unlock := lockPair(from, src, to, dst)
	defer unlock()

	i := slices.Index(src.cards, card)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrCardNotFound, card.Code())
	}
	src.cards = slices.Delete(src.cards, i, i+1)
	dst.cards = append(dst.cards, card)
	return nil
}

// takeFront must be called with c.mu held for writing
func (c *collection) takeFront(count int) ([]deck.Card, bool) {
	if count > len(c.cards) {
		return nil, false
	}
	out := slices.Clone(c.cards[:count])
	if out == nil {
		out = []deck.Card{}
	}
	c.cards = slices.Delete(c.cards, 0, count)
	return out, true
}

// lockPair write-locks two distinct collections lowest handle first
func lockPair(a Handle, ca *collection, b Handle, cb *collection) func() {
	first, second := ca, cb
	if b.less(a) {
		first, second = cb, ca
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
