package game

import (
	"testing"

	"github.com/lox/kasino/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(code string) deck.Card {
	return deck.MustParseCards(code)[0]
}

func TestResolverNothingPending(t *testing.T) {
	r := NewResolver(HeadsUpGame())
	_, err := r.TryToIntent()
	assert.ErrorIs(t, err, ErrUnknownIntent)
	assert.Equal(t, Idle, r.State())
}

func TestResolverSingleClick(t *testing.T) {
	g := HeadsUpGame()
	alice, bob := g.players[0], g.players[1]
	pile, _ := g.Table().Pile(0)

	t.Run("own card waits for a target", func(t *testing.T) {
		r := NewResolver(g)
		r.Push(Click(alice.Hand, card("AC")))

		_, err := r.TryToIntent()
		require.Error(t, err)
		assert.True(t, IsPartial(err))
		assert.NotEmpty(t, PartialHint(err))
		assert.Equal(t, AwaitingSecondClick, r.State())
		assert.Len(t, r.Pending(), 1, "partial keeps the log")

		selected, ok := r.Selected()
		assert.True(t, ok)
		assert.Equal(t, card("AC"), selected)
		assert.Equal(t, selectHint, r.Hint())
	})

	tests := []struct {
		name string
		in   Interaction
		want Intent
	}{
		{"table pile card", Click(pile, card("5C")), Intent{Kind: IntentInspect, Card: card("5C"), Pile: pile}},
		{"opponent card", Click(bob.Hand, card("3C")), Intent{Kind: IntentInspect, Card: card("3C"), Pile: bob.Hand}},
		{"empty table", TableClick(), Intent{Kind: IntentInspect}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(g)
			r.Push(tt.in)
			assert.Equal(t, Resolved, r.State())

			intent, err := r.TryToIntent()
			require.NoError(t, err)
			assert.Equal(t, tt.want, intent)
			assert.False(t, intent.Mutates())
			assert.Empty(t, r.Pending(), "success clears the log")
			assert.Equal(t, Idle, r.State())
		})
	}
}

func TestResolverTwoClicks(t *testing.T) {
	g := HeadsUpGame()
	alice, bob := g.players[0], g.players[1]
	pile, _ := g.Table().Pile(2)

	tests := []struct {
		name    string
		clicks  []Interaction
		want    Intent
		partial bool
	}{
		{
			name:   "build on a pile",
			clicks: []Interaction{Click(alice.Hand, card("AC")), Click(pile, card("JC"))},
			want:   Intent{Kind: IntentBuild, Card: card("AC"), Pile: pile},
		},
		{
			name:   "drop on the table",
			clicks: []Interaction{Click(alice.Hand, card("7C")), TableClick()},
			want:   Intent{Kind: IntentDrop, Card: card("7C")},
		},
		{
			name:   "target in another hand",
			clicks: []Interaction{Click(alice.Hand, card("AC")), Click(bob.Hand, card("4C"))},
			want:   Intent{Kind: IntentBuild, Card: card("AC"), Pile: bob.Hand},
		},
		{
			name:    "reselect own card",
			clicks:  []Interaction{Click(alice.Hand, card("AC")), Click(alice.Hand, card("2C"))},
			partial: true,
		},
		{
			name:    "only the last click counts",
			clicks:  []Interaction{Click(pile, card("JC")), Click(alice.Hand, card("8C"))},
			partial: true,
		},
		{
			name:   "two inspections",
			clicks: []Interaction{Click(pile, card("JC")), TableClick()},
			want:   Intent{Kind: IntentInspect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(g)
			for _, in := range tt.clicks {
				r.Push(in)
			}

			intent, err := r.TryToIntent()
			if tt.partial {
				assert.True(t, IsPartial(err))
				assert.Len(t, r.Pending(), 2)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, intent)
			assert.Empty(t, r.Pending())
		})
	}
}

func TestResolverThreeClicksRejected(t *testing.T) {
	g := HeadsUpGame()
	alice := g.players[0]
	r := NewResolver(g)

	r.Push(Click(alice.Hand, card("AC")))
	r.Push(Click(alice.Hand, card("2C")))
	r.Push(TableClick())
	assert.Equal(t, Rejected, r.State())

	_, err := r.TryToIntent()
	var illegal *IllegalActionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, "yet unknown action", illegal.Reason)
	assert.ErrorIs(t, err, ErrIllegalAction)
	assert.Empty(t, r.Pending(), "rejection clears the log")
	assert.Equal(t, Idle, r.State())

	_, err = r.TryToIntent()
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestResolverUsesCurrentPlayer(t *testing.T) {
	g := HeadsUpGame()
	alice, bob := g.players[0], g.players[1]
	require.NoError(t, g.Apply(Intent{Kind: IntentDrop, Card: card("AC")}))

	r := NewResolver(g)
	r.Push(Click(alice.Hand, card("2C")))
	intent, err := r.TryToIntent()
	require.NoError(t, err, "Alice's card is no longer the current hand")
	assert.Equal(t, IntentInspect, intent.Kind)

	r.Push(Click(bob.Hand, card("3C")))
	_, err = r.TryToIntent()
	assert.True(t, IsPartial(err))
}

func TestResolverReset(t *testing.T) {
	g := HeadsUpGame()
	r := NewResolver(g)
	r.Push(Click(g.players[0].Hand, card("AC")))
	r.Reset()

	assert.Equal(t, Idle, r.State())
	assert.Empty(t, r.Pending())
	_, ok := r.Selected()
	assert.False(t, ok)
	assert.Empty(t, r.Hint())
}
