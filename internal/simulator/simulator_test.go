package simulator

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/kasino/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestNewDefaults(t *testing.T) {
	sim := New(Config{Games: 3, Players: 2})
	assert.Equal(t, 1, sim.config.Parallel)
	assert.Equal(t, "rand", sim.config.Bot)
	assert.NotNil(t, sim.config.Logger)
}

func TestRunSimulation(t *testing.T) {
	stats, err := RunSimulation(context.Background(), 20, 2, 12345, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 20, stats.Games)
	assert.True(t, stats.IsLedgerBalanced())
	// Heads up always deals the full deck: 52 - 4 table cards are played
	assert.Equal(t, 48.0, stats.Mean())
	assert.Zero(t, stats.LeftoverGames)
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{Games: 8, Players: 3, Seed: 99, Parallel: 4, Bot: "mixed", Misclick: 0.2, Logger: testLogger()}

	a, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	b, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Values, b.Values)
	assert.Equal(t, a.Rejected, b.Rejected)
}

func TestPlayerCounts(t *testing.T) {
	tests := []struct {
		players  int
		deckLeft int
	}{
		{players: 2, deckLeft: 0},
		{players: 4, deckLeft: 0},
		{players: 5, deckLeft: 8},
		{players: 7, deckLeft: 6},
		{players: 12, deckLeft: 0},
	}

	for _, tt := range tests {
		sim := New(Config{Games: 1, Players: tt.players, Bot: "trail", Logger: testLogger()})
		result, err := sim.PlayGame(context.Background(), 1)
		require.NoError(t, err, "%d players", tt.players)
		assert.Equal(t, tt.deckLeft, result.DeckLeft, "%d players", tt.players)
		assert.Equal(t, deck.Size, result.Cards+result.DeckLeft)
		assert.Equal(t, deck.Size-4-tt.deckLeft, result.Moves)
	}
}

func TestMisclicksAreCounted(t *testing.T) {
	sim := New(Config{Games: 4, Players: 2, Seed: 5, Parallel: 2, Misclick: 0.5, Logger: testLogger()})
	stats, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Positive(t, stats.Rejected)
	assert.Equal(t, 48.0, stats.Mean())
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Games: 0, Players: 2}).Run(context.Background())
	assert.Error(t, err)
	_, err = New(Config{Games: 1, Players: 2, Bot: "shark"}).Run(context.Background())
	assert.ErrorContains(t, err, "unknown bot type")
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Config{Games: 5, Players: 2, Timeout: time.Second}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
