package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/randutil"
	"github.com/lox/kasino/internal/registry"
)

// TestGameOption configures test game creation
type TestGameOption func(*testGameBuilder)

type testGameBuilder struct {
	seed     int64
	shuffle  bool
	cards    []deck.Card
	players  []string
	eventBus EventBus
	clock    quartz.Clock
	onEnd    func(*Game)
}

// Test game options
func WithSeed(seed int64) TestGameOption {
	return func(b *testGameBuilder) {
		b.seed = seed
		b.shuffle = true
	}
}

func WithPlayers(names ...string) TestGameOption {
	return func(b *testGameBuilder) { b.players = names }
}

// WithDeck deals from cards instead of a built deck
func WithDeck(cards []deck.Card) TestGameOption {
	return func(b *testGameBuilder) { b.cards = cards }
}

func WithTestEventBus(bus EventBus) TestGameOption {
	return func(b *testGameBuilder) { b.eventBus = bus }
}

func WithTestClock(clock quartz.Clock) TestGameOption {
	return func(b *testGameBuilder) { b.clock = clock }
}

func WithTestOnGameEnd(fn func(*Game)) TestGameOption {
	return func(b *testGameBuilder) { b.onEnd = fn }
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// NewTestGame creates an unstarted game with two players and an unshuffled
// deck unless options say otherwise
func NewTestGame(opts ...TestGameOption) *Game {
	b := &testGameBuilder{
		players:  []string{"Alice", "Bob"},
		eventBus: NewEventBus(),
	}
	for _, opt := range opts {
		opt(b)
	}

	cards := b.cards
	if cards == nil {
		if b.shuffle {
			cards = deck.Build(randutil.New(b.seed))
		} else {
			cards = deck.Build(nil)
		}
	}

	gameOpts := []Option{WithLogger(testLogger()), WithEventBus(b.eventBus)}
	if b.clock != nil {
		gameOpts = append(gameOpts, WithClock(b.clock))
	}
	if b.onEnd != nil {
		gameOpts = append(gameOpts, WithOnGameEnd(b.onEnd))
	}

	g, err := NewGame(registry.New(), b.players, cards, gameOpts...)
	if err != nil {
		panic(err)
	}
	return g
}

// NewStartedTestGame creates a game and runs setup
func NewStartedTestGame(opts ...TestGameOption) *Game {
	g := NewTestGame(opts...)
	if err := g.Start(); err != nil {
		panic(err)
	}
	return g
}

// HeadsUpGame is a started two player game from an unshuffled deck
func HeadsUpGame() *Game {
	return NewStartedTestGame()
}

// handOf returns the cards in a player's hand
func handOf(g *Game, i int) []deck.Card {
	return g.reg.Cards(g.players[i].Hand)
}

// playCurrent drops the first card of the current player's hand
func playCurrent(g *Game) error {
	p, ok := g.CurrentPlayer()
	if !ok {
		return ErrNotYourTurn
	}
	hand := g.reg.Cards(p.Hand)
	if len(hand) == 0 {
		return ErrCardNotInHand
	}
	return g.Apply(Intent{Kind: IntentDrop, Card: hand[0]})
}
