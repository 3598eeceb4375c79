package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/kasino/internal/deck"
)

// GameResult is the outcome of one simulated game
type GameResult struct {
	Seed     int64 `json:"seed"` // RNG seed for this game (for replay)
	Players  int   `json:"players"`
	Moves    int   `json:"moves"`     // Applied drops and builds
	Rejected int   `json:"rejected"`  // Click sequences refused by the engine
	Rounds   int   `json:"rounds"`    // Completed end-of-round deals
	Piles    int   `json:"piles"`     // Table piles at the end
	Cards    int   `json:"cards"`     // Cards on the table at the end
	DeckLeft int   `json:"deck_left"` // Cards never dealt
}

// PlayerCountStats tracks games for one table size
type PlayerCountStats struct {
	Games    int
	SumMoves int
	Leftover int // Games that ended with undealt cards
}

// Statistics aggregates simulated games
type Statistics struct {
	Games     int
	SumMoves  float64
	SumMoves2 float64   // Sum of squares for variance calculation
	Values    []float64 // Moves per game for median/percentile calculation

	Rejected      int
	SumRounds     int
	MaxPiles      int
	LeftoverGames int

	// Card ledger: every game must account for a full deck
	TableCards int
	DeckCards  int

	ByPlayers map[int]*PlayerCountStats

	// Results keeps every game in the order it was added
	Results []GameResult
}

// Mean returns the mean number of moves per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMoves / float64(s.Games)
}

// Variance returns the sample variance of moves per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumMoves2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of moves per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Add incorporates a game result into the statistics
func (s *Statistics) Add(result GameResult) {
	moves := float64(result.Moves)
	s.Games++
	s.SumMoves += moves
	s.SumMoves2 += moves * moves
	s.Values = append(s.Values, moves)
	s.Results = append(s.Results, result)

	s.Rejected += result.Rejected
	s.SumRounds += result.Rounds
	if result.Piles > s.MaxPiles {
		s.MaxPiles = result.Piles
	}
	if result.DeckLeft > 0 {
		s.LeftoverGames++
	}
	s.TableCards += result.Cards
	s.DeckCards += result.DeckLeft

	if s.ByPlayers == nil {
		s.ByPlayers = make(map[int]*PlayerCountStats)
	}
	pc, ok := s.ByPlayers[result.Players]
	if !ok {
		pc = &PlayerCountStats{}
		s.ByPlayers[result.Players] = pc
	}
	pc.Games++
	pc.SumMoves += result.Moves
	if result.DeckLeft > 0 {
		pc.Leftover++
	}
}

// Merge folds other into s; used to combine per-worker statistics
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.SumMoves += other.SumMoves
	s.SumMoves2 += other.SumMoves2
	s.Values = append(s.Values, other.Values...)
	s.Results = append(s.Results, other.Results...)
	s.Rejected += other.Rejected
	s.SumRounds += other.SumRounds
	s.MaxPiles = max(s.MaxPiles, other.MaxPiles)
	s.LeftoverGames += other.LeftoverGames
	s.TableCards += other.TableCards
	s.DeckCards += other.DeckCards

	if s.ByPlayers == nil {
		s.ByPlayers = make(map[int]*PlayerCountStats)
	}
	for n, theirs := range other.ByPlayers {
		ours, ok := s.ByPlayers[n]
		if !ok {
			ours = &PlayerCountStats{}
			s.ByPlayers[n] = ours
		}
		ours.Games += theirs.Games
		ours.SumMoves += theirs.SumMoves
		ours.Leftover += theirs.Leftover
	}
}

// Median returns the median moves per game
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the moves per game at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PlayerCounts returns the table sizes seen, smallest first
func (s *Statistics) PlayerCounts() []int {
	counts := make([]int, 0, len(s.ByPlayers))
	for n := range s.ByPlayers {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	return counts
}

// IsLedgerBalanced checks that every game accounted for a full deck
func (s *Statistics) IsLedgerBalanced() bool {
	return s.TableCards+s.DeckCards == s.Games*deck.Size
}

// Validate performs consistency checks on the aggregated data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("card ledger mismatch: table=%d deck=%d games=%d",
			s.TableCards, s.DeckCards, s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	total := 0
	for _, pc := range s.ByPlayers {
		total += pc.Games
	}
	if total != s.Games {
		return fmt.Errorf("player count total (%d) does not match games count (%d)", total, s.Games)
	}
	return nil
}
