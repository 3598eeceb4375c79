package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/lox/kasino/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	r := New()
	cards := deck.MustParseCards("AC 2C 3C")

	h1 := r.Create(cards)
	h2 := r.Create(nil)

	assert.False(t, h1.IsNil())
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, []Handle{h1, h2}, r.Handles())
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, cards, r.Cards(h1))
	assert.True(t, r.IsEmpty(h2))

	// the registry keeps its own copy
	cards[0] = deck.NewCard(deck.Hearts, deck.King)
	assert.Equal(t, deck.NewCard(deck.Clubs, deck.Ace), r.Cards(h1)[0])
}

func TestDraw(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		count     int
		wantOK    bool
		wantAfter int
	}{
		{name: "partial", size: 5, count: 3, wantOK: true, wantAfter: 2},
		{name: "exact", size: 5, count: 5, wantOK: true, wantAfter: 0},
		{name: "zero", size: 5, count: 0, wantOK: true, wantAfter: 5},
		{name: "too many", size: 5, count: 6, wantOK: false, wantAfter: 5},
		{name: "empty", size: 0, count: 1, wantOK: false, wantAfter: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			all := deck.Standard()[:tt.size]
			h := r.Create(all)

			got, ok := r.Draw(h, tt.count)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantAfter, r.Len(h))
			if !tt.wantOK {
				assert.Nil(t, got)
				assert.Equal(t, all, r.Cards(h), "failed draw must not mutate")
				return
			}
			assert.Equal(t, all[:tt.count], got, "draw takes from the front")
			assert.Equal(t, all[tt.count:], r.Cards(h))
		})
	}
}

func TestDrawNegativePanics(t *testing.T) {
	r := New()
	h := r.Create(nil)
	assert.Panics(t, func() { r.Draw(h, -1) })
}

func TestAppendKeepsOrder(t *testing.T) {
	r := New()
	h := r.Create(deck.MustParseCards("AS"))
	r.Append(h, deck.MustParseCards("2S 3S")...)
	r.Append(h)
	assert.Equal(t, deck.MustParseCards("AS 2S 3S"), r.Cards(h))
}

func TestQueries(t *testing.T) {
	r := New()
	h := r.Create(deck.MustParseCards("AS KD"))

	assert.True(t, r.HasCards(h, 0))
	assert.True(t, r.HasCards(h, 2))
	assert.False(t, r.HasCards(h, 3))
	assert.False(t, r.IsEmpty(h))
	assert.True(t, r.Contains(h, deck.NewCard(deck.Diamonds, deck.King)))
	assert.False(t, r.Contains(h, deck.NewCard(deck.Hearts, deck.King)))
}

func TestUnknownHandlePanics(t *testing.T) {
	r := New()
	other := New().Create(nil)

	defer func() {
		rec := recover()
		require.NotNil(t, rec)
		err, ok := rec.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrUnknownHandle))
	}()
	r.Len(other)
}

func TestWithReadWrite(t *testing.T) {
	r := New()
	h := r.Create(deck.MustParseCards("AS 2S 3S"))

	var seen []string
	r.WithRead(h, func(cards []deck.Card) {
		for _, c := range cards {
			seen = append(seen, c.Code())
		}
	})
	assert.Equal(t, []string{"AS", "2S", "3S"}, seen)

	r.WithWrite(h, func(cards *[]deck.Card) {
		s := *cards
		s[0], s[2] = s[2], s[0]
	})
	assert.Equal(t, deck.MustParseCards("3S 2S AS"), r.Cards(h))

	t.Run("lock released after panic", func(t *testing.T) {
		assert.Panics(t, func() {
			r.WithWrite(h, func(*[]deck.Card) { panic("boom") })
		})
		// would deadlock if the write lock leaked
		r.Append(h, deck.NewCard(deck.Hearts, deck.Ace))
		assert.Equal(t, 4, r.Len(h))
	})
}

func TestMove(t *testing.T) {
	r := New()
	src := r.Create(deck.MustParseCards("AS 2S 3S"))
	dst := r.Create(deck.MustParseCards("KH"))

	require.True(t, r.Move(src, dst, 2))
	assert.Equal(t, deck.MustParseCards("3S"), r.Cards(src))
	assert.Equal(t, deck.MustParseCards("KH AS 2S"), r.Cards(dst))

	assert.False(t, r.Move(src, dst, 2))
	assert.Equal(t, 1, r.Len(src), "failed move leaves source untouched")
	assert.Equal(t, 3, r.Len(dst))

	assert.True(t, r.Move(src, src, 1))
	assert.False(t, r.Move(src, src, 2))
	assert.Equal(t, 1, r.Len(src))
}

func TestMoveCard(t *testing.T) {
	r := New()
	hand := r.Create(deck.MustParseCards("AS 2S 3S"))
	pile := r.Create(deck.MustParseCards("KH"))

	require.NoError(t, r.MoveCard(hand, pile, deck.NewCard(deck.Spades, deck.Two)))
	assert.Equal(t, deck.MustParseCards("AS 3S"), r.Cards(hand))
	assert.Equal(t, deck.MustParseCards("KH 2S"), r.Cards(pile))

	err := r.MoveCard(hand, pile, deck.NewCard(deck.Spades, deck.Two))
	assert.ErrorIs(t, err, ErrCardNotFound)
	assert.Equal(t, 2, r.Len(hand))

	assert.NoError(t, r.MoveCard(hand, hand, deck.NewCard(deck.Spades, deck.Ace)))
	assert.ErrorIs(t, r.MoveCard(hand, hand, deck.NewCard(deck.Hearts, deck.Ace)), ErrCardNotFound)
}

func TestHandleParse(t *testing.T) {
	r := New()
	h := r.Create(nil)

	parsed, err := ParseHandle(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)
	assert.Len(t, h.Short(), 8)

	_, err = ParseHandle("not-a-handle")
	assert.Error(t, err)
	assert.True(t, NilHandle.IsNil())
}

func TestConcurrentDrawsNeverOverdraw(t *testing.T) {
	r := New()
	h := r.Create(deck.Standard())

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		drawn []deck.Card
	)
	for range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cards, ok := r.Draw(h, 2)
			if !ok {
				return
			}
			mu.Lock()
			drawn = append(drawn, cards...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, drawn, 52, "exactly 26 draws of 2 can succeed")
	assert.True(t, r.IsEmpty(h))
	assert.NoError(t, deck.Validate(drawn))
}

func TestConcurrentOppositeMovesConserveCards(t *testing.T) {
	r := New()
	all := deck.Standard()
	a := r.Create(all[:26])
	b := r.Create(all[26:])

	var wg sync.WaitGroup
	for i := range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				r.Move(a, b, 1)
			} else {
				r.Move(b, a, 1)
			}
			// concurrent reader sees a consistent total
			_ = r.Len(a) + r.Len(b)
		}()
	}
	wg.Wait()

	merged := append(r.Cards(a), r.Cards(b)...)
	require.NoError(t, deck.Validate(merged), fmt.Sprintf("a=%d b=%d", r.Len(a), r.Len(b)))
}
