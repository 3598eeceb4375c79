package game

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/registry"
)

const (
	// setupDeal is the number of cards each player and the table receive per
	// setup step
	setupDeal = 2
	// roundDeal is the number of cards each player receives per end-of-round
	// deal; two deals happen per round
	roundDeal = 2
)

// Option configures a Game
type Option func(*Game)

// WithLogger sets the game logger
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithEventBus sets the bus the game publishes to
func WithEventBus(bus EventBus) Option {
	return func(g *Game) { g.bus = bus }
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) Option {
	return func(g *Game) { g.clock = clock }
}

// WithOnGameEnd registers a hook run once when the game ends. Scoring
// belongs here.
func WithOnGameEnd(fn func(*Game)) Option {
	return func(g *Game) { g.onGameEnd = fn }
}

// Game tracks the players, draw deck, table and turn of one kasino game.
// All card collections live in the registry passed to NewGame.
type Game struct {
	reg       *registry.Registry
	players   []*Player
	deck      registry.Handle
	table     Table
	lastRound bool
	turn      int // -1 when no turn is active
	state     State
	rounds    int

	logger    *log.Logger
	bus       EventBus
	clock     quartz.Clock
	onGameEnd func(*Game)
}

// NewGame registers the draw deck and an empty hand per player in reg.
// cards must be exactly one standard deck.
func NewGame(reg *registry.Registry, names []string, cards []deck.Card, opts ...Option) (*Game, error) {
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	if err := deck.Validate(cards); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}

	g := &Game{
		reg:    reg,
		turn:   -1,
		state:  NotStarted,
		logger: log.New(io.Discard),
		bus:    NewEventBus(),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.deck = reg.Create(cards)
	g.players = make([]*Player, len(names))
	for i, name := range names {
		g.players[i] = &Player{ID: i, Name: name, Hand: reg.Create(nil)}
	}
	return g, nil
}

// Start moves the game from NotStarted through Setup into the first round
func (g *Game) Start() error {
	if g.state != NotStarted {
		return ErrAlreadyStarted
	}
	g.state = Setup
	g.logger.Info("Starting game", "players", len(g.players), "deck", g.reg.Len(g.deck))

	if err := g.setup(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	g.state = Round

	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name
	}
	g.bus.Publish(GameStartEvent{Players: names, DeckLeft: g.reg.Len(g.deck), timestamp: g.clock.Now()})
	g.publishTurn()
	return nil
}

// setup deals two cards each, two table piles, two more cards each and two
// more piles, then gives the turn to the first player.
func (g *Game) setup() error {
	if err := g.DealEachPlayer(setupDeal); err != nil {
		return err
	}
	if err := g.DealTable(setupDeal); err != nil {
		return err
	}
	if err := g.DealEachPlayer(setupDeal); err != nil {
		return err
	}
	if err := g.DealTable(setupDeal); err != nil {
		return err
	}
	g.turn = 0
	return nil
}

// DealEachPlayer deals count cards to every player in player order. If the
// deck cannot cover all players nothing is dealt.
func (g *Game) DealEachPlayer(count int) error {
	need := count * len(g.players)
	if !g.reg.HasCards(g.deck, need) {
		return fmt.Errorf("%w: need %d cards, deck has %d", ErrDeckOrPileEmpty, need, g.reg.Len(g.deck))
	}

	// Single writer: the precondition above cannot go stale before these
	// moves. A failure here leaves earlier players dealt.
	for _, p := range g.players {
		if !g.reg.Move(g.deck, p.Hand, count) {
			return fmt.Errorf("%w: dealing to %s", ErrDeckOrPileEmpty, p.Name)
		}
		left := g.reg.Len(g.deck)
		g.logger.Debug("Dealt cards", "player", p.Name, "count", count, "deck", left)
		g.bus.Publish(CardsDealtEvent{Player: p.Name, Count: count, DeckLeft: left, timestamp: g.clock.Now()})
	}
	return nil
}

// DealTable creates count single-card piles on the table in draw order
func (g *Game) DealTable(count int) error {
	if !g.reg.HasCards(g.deck, count) {
		return fmt.Errorf("%w: need %d cards, deck has %d", ErrDeckOrPileEmpty, count, g.reg.Len(g.deck))
	}

	for range count {
		pile := g.reg.Create(nil)
		if !g.reg.Move(g.deck, pile, 1) {
			return fmt.Errorf("%w: dealing to table", ErrDeckOrPileEmpty)
		}
		g.table.add(pile)
		card := g.reg.Cards(pile)[0]
		g.logger.Debug("Dealt table pile", "pile", pile.Short(), "card", card)
		g.bus.Publish(PileCreatedEvent{Pile: pile, Card: card, Position: g.table.Len() - 1, timestamp: g.clock.Now()})
	}
	return nil
}

// EndOfRound refills the hands: two deals of two cards to every player.
// The second deal is skipped when the first emptied the deck. Once the deck
// is empty the game enters its last round; ending a last round ends the game.
func (g *Game) EndOfRound() error {
	if !g.state.InProgress() {
		return ErrGameNotInProgress
	}
	if g.lastRound {
		g.EndOfGame()
		return nil
	}

	for i := range 2 {
		if i > 0 && g.reg.IsEmpty(g.deck) {
			break
		}
		if err := g.DealEachPlayer(roundDeal); err != nil {
			return fmt.Errorf("end of round %d: %w", g.rounds+1, err)
		}
	}
	g.rounds++
	left := g.reg.Len(g.deck)
	g.logger.Info("Round complete", "round", g.rounds, "deck", left)
	g.bus.Publish(RoundEndEvent{Round: g.rounds, DeckLeft: left, timestamp: g.clock.Now()})

	if left == 0 {
		g.enterLastRound()
	}
	return nil
}

// EndOfGame finishes the game and runs the game-end hook. Scoring is not
// part of the engine.
func (g *Game) EndOfGame() {
	if g.state == Ended {
		return
	}
	g.state = Ended
	g.turn = -1
	g.logger.Info("Game over", "rounds", g.rounds, "piles", g.table.Len(), "deck", g.reg.Len(g.deck))
	g.bus.Publish(GameEndEvent{Rounds: g.rounds, Piles: g.table.Len(), timestamp: g.clock.Now()})
	if g.onGameEnd != nil {
		g.onGameEnd(g)
	}
}

func (g *Game) enterLastRound() {
	if g.lastRound {
		return
	}
	g.lastRound = true
	g.state = LastRound
	left := g.reg.Len(g.deck)
	g.logger.Info("Last round", "deck", left)
	g.bus.Publish(LastRoundEvent{DeckLeft: left, timestamp: g.clock.Now()})
}

// AdvanceTurn passes the turn to the next player. When every hand is empty
// the round ends first. If the deck cannot cover another round the leftover
// cards stay in the deck and the game plays out its last round.
func (g *Game) AdvanceTurn() error {
	if !g.state.InProgress() {
		return ErrGameNotInProgress
	}

	if g.HandsEmpty() {
		err := g.EndOfRound()
		switch {
		case errors.Is(err, ErrDeckOrPileEmpty):
			g.logger.Warn("Deck cannot refill hands", "deck", g.reg.Len(g.deck), "error", err)
			g.enterLastRound()
			if g.HandsEmpty() {
				g.EndOfGame()
				return nil
			}
		case err != nil:
			return err
		}
		if g.state == Ended {
			return nil
		}
	}

	g.turn = (g.turn + 1) % len(g.players)
	g.publishTurn()
	return nil
}

func (g *Game) publishTurn() {
	p, ok := g.CurrentPlayer()
	if !ok {
		return
	}
	g.logger.Debug("Turn", "player", p.Name, "index", g.turn)
	g.bus.Publish(TurnChangeEvent{Player: p.Name, Index: g.turn, timestamp: g.clock.Now()})
}

// Apply executes a resolved intent for the current player. Drop and build
// end the turn; inspect changes nothing.
func (g *Game) Apply(in Intent) error {
	if !g.state.InProgress() {
		return ErrGameNotInProgress
	}
	p, ok := g.CurrentPlayer()
	if !ok {
		return ErrNotYourTurn
	}

	switch in.Kind {
	case IntentInspect:
		return nil

	case IntentDrop:
		if err := g.checkInHand(p, in.Card); err != nil {
			return err
		}
		pile := g.reg.Create(nil)
		if err := g.reg.MoveCard(p.Hand, pile, in.Card); err != nil {
			return fmt.Errorf("drop %s: %w", in.Card.Code(), err)
		}
		g.table.add(pile)
		g.logger.Debug("Dropped card", "player", p.Name, "card", in.Card, "pile", pile.Short())
		g.bus.Publish(PileCreatedEvent{Pile: pile, Card: in.Card, Position: g.table.Len() - 1, timestamp: g.clock.Now()})
		g.bus.Publish(CardPlayedEvent{Player: p.Name, Card: in.Card, Pile: pile, Kind: IntentDrop, timestamp: g.clock.Now()})

	case IntentBuild:
		if owner := g.handOwner(in.Pile); owner != nil {
			if owner != p {
				return fmt.Errorf("%w: %s holds that pile", ErrOtherPlayersCards, owner.Name)
			}
			return fmt.Errorf("%w: cannot build onto your own hand", ErrNotAPile)
		}
		if !g.table.Has(in.Pile) {
			return ErrNotAPile
		}
		if err := g.checkInHand(p, in.Card); err != nil {
			return err
		}
		if err := g.reg.MoveCard(p.Hand, in.Pile, in.Card); err != nil {
			return fmt.Errorf("build %s: %w", in.Card.Code(), err)
		}
		g.logger.Debug("Built on pile", "player", p.Name, "card", in.Card, "pile", in.Pile.Short())
		g.bus.Publish(CardPlayedEvent{Player: p.Name, Card: in.Card, Pile: in.Pile, Kind: IntentBuild, timestamp: g.clock.Now()})

	default:
		return fmt.Errorf("unknown intent kind %d", in.Kind)
	}

	return g.AdvanceTurn()
}

func (g *Game) checkInHand(p *Player, card deck.Card) error {
	if g.reg.Contains(p.Hand, card) {
		return nil
	}
	for _, other := range g.players {
		if other != p && g.reg.Contains(other.Hand, card) {
			return fmt.Errorf("%w: %s", ErrOtherPlayersCards, card.Code())
		}
	}
	return fmt.Errorf("%w: %s", ErrCardNotInHand, card.Code())
}

// handOwner returns the player whose hand is h, or nil
func (g *Game) handOwner(h registry.Handle) *Player {
	for _, p := range g.players {
		if p.Hand == h {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() (*Player, bool) {
	if g.turn < 0 || g.turn >= len(g.players) {
		return nil, false
	}
	return g.players[g.turn], true
}

// CurrentTurn returns the index of the current player, or -1
func (g *Game) CurrentTurn() int {
	return g.turn
}

// InCurrentHand reports whether card is in the current player's hand
func (g *Game) InCurrentHand(card deck.Card) bool {
	p, ok := g.CurrentPlayer()
	return ok && g.reg.Contains(p.Hand, card)
}

// HandsEmpty reports whether every player has played out their hand
func (g *Game) HandsEmpty() bool {
	for _, p := range g.players {
		if !g.reg.IsEmpty(p.Hand) {
			return false
		}
	}
	return true
}

// ValidateConservation checks that the deck, hands and piles together hold
// exactly one standard deck.
func (g *Game) ValidateConservation() error {
	all := g.reg.Cards(g.deck)
	for _, p := range g.players {
		all = append(all, g.reg.Cards(p.Hand)...)
	}
	for _, h := range g.table.piles {
		all = append(all, g.reg.Cards(h)...)
	}
	if err := deck.Validate(all); err != nil {
		return fmt.Errorf("card conservation violated: %w", err)
	}
	return nil
}

// Players returns the players in seating order
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// Deck returns the draw deck handle
func (g *Game) Deck() registry.Handle { return g.deck }

// Table returns the table
func (g *Game) Table() *Table { return &g.table }

// LastRound reports whether the deck has run out
func (g *Game) LastRound() bool { return g.lastRound }

// State returns the state machine position
func (g *Game) State() State { return g.state }

// Rounds returns the number of completed end-of-round deals
func (g *Game) Rounds() int { return g.rounds }

// Registry returns the registry holding the game's collections
func (g *Game) Registry() *registry.Registry { return g.reg }

// String dumps the deck, hands and table; used in debug logs
func (g *Game) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "deck: %s\n", deck.FormatCards(g.reg.Cards(g.deck), ", "))
	for _, p := range g.players {
		fmt.Fprintf(&b, "player: %s, hand: %s\n", p.Name, deck.FormatCards(g.reg.Cards(p.Hand), ", "))
	}
	b.WriteString("table:\n")
	for _, h := range g.table.piles {
		fmt.Fprintf(&b, "- pile: %s\n", deck.FormatCards(g.reg.Cards(h), ", "))
	}
	return b.String()
}
