package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/randutil"
	"github.com/lox/kasino/internal/registry"
)

// SessionConfig configures a Session
type SessionConfig struct {
	Players []string
	// Seed fixes the shuffle; nil picks a time based seed
	Seed *int64
	// Shuffle deals from a shuffled deck; false keeps the standard order
	Shuffle   bool
	Clock     quartz.Clock
	Logger    *log.Logger
	OnGameEnd func(*Game)
}

// Session owns the registry, game, resolver and event bus of one game. It
// serialises every mutation; Snapshot may be called from any goroutine.
type Session struct {
	mu       sync.RWMutex
	reg      *registry.Registry
	game     *Game
	resolver *Resolver
	bus      *SimpleEventBus
	buffer   *eventBuffer
	flushMu  sync.Mutex
	clock    quartz.Clock
	logger   *log.Logger
	seed     int64
}

// Outcome reports what a click resolved to
type Outcome struct {
	Intent   Intent
	Resolved bool
	Applied  bool
}

// CardRef is a card together with the collection holding it, which is what
// a click needs
type CardRef struct {
	Card deck.Card
	Pile registry.Handle
}

// PlayerView is a read-only copy of one player's seat
type PlayerView struct {
	ID    int
	Name  string
	Hand  registry.Handle
	Cards []CardRef
}

// PileView is a read-only copy of one table pile, bottom card first
type PileView struct {
	Handle registry.Handle
	Cards  []deck.Card
}

// Top returns the most recently placed card
func (p PileView) Top() (deck.Card, bool) {
	if len(p.Cards) == 0 {
		return deck.Card{}, false
	}
	return p.Cards[len(p.Cards)-1], true
}

// View is a consistent snapshot of a session for renderers and bots
type View struct {
	Players   []PlayerView
	Piles     []PileView
	Deck      registry.Handle
	DeckSize  int
	Turn      int // -1 when no player has the turn
	State     State
	LastRound bool
	Rounds    int
	Hint      string
	Selected  *deck.Card
}

// Current returns the view of the player whose turn it is
func (v View) Current() (PlayerView, bool) {
	if v.Turn < 0 || v.Turn >= len(v.Players) {
		return PlayerView{}, false
	}
	return v.Players[v.Turn], true
}

// NewSession builds the deck and registers every collection. The game is
// not dealt until Start.
func NewSession(cfg SessionConfig) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	seed := randutil.Seed(cfg.Seed)
	var rng *rand.Rand
	if cfg.Shuffle {
		rng = randutil.New(seed)
	}

	s := &Session{
		reg:    registry.New(),
		bus:    NewEventBus(),
		buffer: &eventBuffer{},
		clock:  clock,
		logger: logger,
		seed:   seed,
	}

	// The game publishes into a buffer that is flushed once the session lock
	// is released, so subscribers may call Snapshot.
	inner := NewEventBus()
	inner.Subscribe(s.buffer)

	opts := []Option{
		WithLogger(logger.WithPrefix("game")),
		WithEventBus(inner),
		WithClock(clock),
	}
	if cfg.OnGameEnd != nil {
		opts = append(opts, WithOnGameEnd(cfg.OnGameEnd))
	}

	g, err := NewGame(s.reg, cfg.Players, deck.Build(rng), opts...)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	s.game = g
	s.resolver = NewResolver(g)
	return s, nil
}

// Start deals the opening cards
func (s *Session) Start() error {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("Session starting", "seed", s.seed, "players", len(s.game.players))
	return s.game.Start()
}

// Click feeds one interaction to the resolver and applies the intent it
// completes. A *PartialIntentError means another click is expected.
func (s *Session) Click(in Interaction) (Outcome, error) {
	defer s.flush()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.game.State().InProgress() {
		return Outcome{}, ErrGameNotInProgress
	}
	if in.At.IsZero() {
		in.At = s.clock.Now()
	}

	s.resolver.Push(in)
	intent, err := s.resolver.TryToIntent()
	if err != nil {
		if IsPartial(err) {
			s.logger.Debug("Awaiting second click", "interaction", in)
		} else {
			s.logger.Debug("Click rejected", "interaction", in, "error", err)
		}
		return Outcome{}, err
	}

	out := Outcome{Intent: intent, Resolved: true}
	if !intent.Mutates() {
		return out, nil
	}

	if err := s.game.Apply(intent); err != nil {
		s.logger.Debug("Intent rejected", "intent", intent, "error", err)
		return out, fmt.Errorf("apply %s: %w", intent, err)
	}
	out.Applied = true

	if err := s.game.ValidateConservation(); err != nil {
		s.logger.Error("Card conservation violated", "error", err, "state", s.game.String())
		return out, err
	}
	return out, nil
}

// Cancel drops a half-finished click sequence
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver.Reset()
}

// Snapshot copies the visible state of the session
func (s *Session) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.game
	v := View{
		Deck:      g.deck,
		DeckSize:  s.reg.Len(g.deck),
		Turn:      g.turn,
		State:     g.state,
		LastRound: g.lastRound,
		Rounds:    g.rounds,
		Hint:      s.resolver.Hint(),
	}
	if card, ok := s.resolver.Selected(); ok {
		v.Selected = &card
	}

	v.Players = make([]PlayerView, len(g.players))
	for i, p := range g.players {
		cards := s.reg.Cards(p.Hand)
		refs := make([]CardRef, len(cards))
		for j, c := range cards {
			refs[j] = CardRef{Card: c, Pile: p.Hand}
		}
		v.Players[i] = PlayerView{ID: p.ID, Name: p.Name, Hand: p.Hand, Cards: refs}
	}

	v.Piles = make([]PileView, len(g.table.piles))
	for i, h := range g.table.piles {
		v.Piles[i] = PileView{Handle: h, Cards: s.reg.Cards(h)}
	}
	return v
}

// Validate checks card conservation
func (s *Session) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.ValidateConservation()
}

// Events returns the bus the session publishes to
func (s *Session) Events() EventBus {
	return s.bus
}

// Seed returns the seed the deck was shuffled with
func (s *Session) Seed() int64 {
	return s.seed
}

// Dump renders the full table state for debugging
func (s *Session) Dump() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.game.String()
}

func (s *Session) flush() {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()
	for _, event := range s.buffer.drain() {
		s.bus.Publish(event)
	}
}

type eventBuffer struct {
	mu     sync.Mutex
	events []GameEvent
}

func (b *eventBuffer) OnEvent(event GameEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *eventBuffer) drain() []GameEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	return out
}
