package game

import (
	"sync"
	"time"

	"github.com/lox/kasino/internal/deck"
	"github.com/lox/kasino/internal/registry"
)

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once setup has dealt the opening cards
type GameStartEvent struct {
	Players   []string
	DeckLeft  int
	timestamp time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// CardsDealtEvent is published for every hand that receives cards
type CardsDealtEvent struct {
	Player    string
	Count     int
	DeckLeft  int
	timestamp time.Time
}

func (e CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }
func (e CardsDealtEvent) Timestamp() time.Time { return e.timestamp }

// PileCreatedEvent is published when a new pile is added to the table
type PileCreatedEvent struct {
	Pile      registry.Handle
	Card      deck.Card
	Position  int
	timestamp time.Time
}

func (e PileCreatedEvent) EventType() EventType { return EventTypePileCreated }
func (e PileCreatedEvent) Timestamp() time.Time { return e.timestamp }

// CardPlayedEvent is published when a player drops or builds a card
type CardPlayedEvent struct {
	Player    string
	Card      deck.Card
	Pile      registry.Handle
	Kind      IntentKind
	timestamp time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }

// TurnChangeEvent is published whenever the turn moves to a player
type TurnChangeEvent struct {
	Player    string
	Index     int
	timestamp time.Time
}

func (e TurnChangeEvent) EventType() EventType { return EventTypeTurnChange }
func (e TurnChangeEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published after the end-of-round deal
type RoundEndEvent struct {
	Round     int
	DeckLeft  int
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// LastRoundEvent is published when the draw deck can no longer refill hands
type LastRoundEvent struct {
	DeckLeft  int
	timestamp time.Time
}

func (e LastRoundEvent) EventType() EventType { return EventTypeLastRound }
func (e LastRoundEvent) Timestamp() time.Time { return e.timestamp }

// GameEndEvent is published once the last round has been played out
type GameEndEvent struct {
	Rounds    int
	Piles     int
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventFunc adapts a function to EventSubscriber
type EventFunc func(event GameEvent)

func (f EventFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Subscribers run on
// the publishing goroutine.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Subscribers must be
// comparable; EventFunc values cannot be unsubscribed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

// EventRecorder collects events in order; handy for tests and replays
type EventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *EventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of everything recorded so far
func (r *EventRecorder) Events() []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]GameEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the event types recorded so far, in order
func (r *EventRecorder) Types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}
