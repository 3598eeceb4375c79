package game

// State is the position of a game in the dealing state machine
type State int

const (
	NotStarted State = iota
	Setup
	Round
	LastRound
	Ended
)

// String returns the string representation of a game state
func (s State) String() string {
	switch s {
	case NotStarted:
		return "Not Started"
	case Setup:
		return "Setup"
	case Round:
		return "Round"
	case LastRound:
		return "Last Round"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}

// InProgress reports whether moves can be played in this state
func (s State) InProgress() bool {
	return s == Round || s == LastRound
}
