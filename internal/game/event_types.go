package game

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeGameStart   EventType = "game_start"
	EventTypeCardsDealt  EventType = "cards_dealt"
	EventTypePileCreated EventType = "pile_created"
	EventTypeCardPlayed  EventType = "card_played"
	EventTypeTurnChange  EventType = "turn_change"
	EventTypeRoundEnd    EventType = "round_end"
	EventTypeLastRound   EventType = "last_round"
	EventTypeGameEnd     EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}
