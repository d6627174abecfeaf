package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapjackhq/tapjack/internal/deck"
)

func stackedDeck(cards string) *deck.Deck {
	d := deck.New()
	d.Load(deck.MustParseCards(cards))
	return d
}

func TestSplitMovesSecondCardAndDealsToBoth(t *testing.T) {
	st := NewRoundState()
	primary, secondary := st.Hands(Seat1)
	dealAll(t, primary, "8c8d")

	d := stackedDeck("2h3h")
	require.NoError(t, st.Split(Seat1, d))

	assert.Equal(t, 2, primary.Len())
	assert.Equal(t, 2, secondary.Len())
	assert.Equal(t, deck.NewCard(deck.Eight, deck.Clubs), primary.Card(0))
	assert.Equal(t, deck.NewCard(deck.Eight, deck.Diamonds), secondary.Card(0))
	assert.Equal(t, 10, primary.Value(), "8+2")
	assert.Equal(t, 11, secondary.Value(), "8+3")
	assert.False(t, secondary.Empty())
}

func TestSplitAcesRestoreSoftEleven(t *testing.T) {
	st := NewRoundState()
	primary, secondary := st.Hands(Seat2)
	dealAll(t, primary, "AcAd")
	require.Equal(t, 12, primary.Value(), "pair of aces before split")

	d := stackedDeck("9h2s")
	require.NoError(t, st.Split(Seat2, d))

	// Each one-card hand was a soft 11 before its fresh card landed.
	assert.Equal(t, 20, primary.Value(), "A+9 stays soft")
	assert.Equal(t, 1, primary.SoftCount())
	assert.Equal(t, 13, secondary.Value(), "A+2 soft 13")
	assert.Equal(t, 1, secondary.SoftCount())
}

func TestSplitPreconditions(t *testing.T) {
	t.Run("unequal ranks", func(t *testing.T) {
		st := NewRoundState()
		primary, _ := st.Hands(Seat1)
		dealAll(t, primary, "8c9d")
		assert.ErrorIs(t, st.Split(Seat1, stackedDeck("2h3h")), ErrNotSplittable)
	})

	t.Run("already split", func(t *testing.T) {
		st := NewRoundState()
		primary, _ := st.Hands(Seat1)
		dealAll(t, primary, "8c8d")
		d := stackedDeck("8h8s2c3c")
		require.NoError(t, st.Split(Seat1, d))
		// Primary is a pair of eights again, but the secondary slot is taken.
		assert.ErrorIs(t, st.Split(Seat1, d), ErrNotSplittable)
	})

	t.Run("more than two cards", func(t *testing.T) {
		st := NewRoundState()
		primary, _ := st.Hands(Seat1)
		dealAll(t, primary, "3c3d3h")
		assert.ErrorIs(t, st.Split(Seat1, stackedDeck("2h3s")), ErrNotSplittable)
	})
}

func TestResolveOutcome(t *testing.T) {
	mk := func(t *testing.T, cards string) *Hand {
		t.Helper()
		var h Hand
		dealAll(t, &h, cards)
		return &h
	}

	tests := []struct {
		name   string
		player string
		dealer string
		want   Outcome
	}{
		{name: "higher value wins", player: "KcTd", dealer: "Th7d", want: Won},
		{name: "lower value loses", player: "8c5d", dealer: "Th7d", want: Lost},
		{name: "equal value pushes", player: "Th7c", dealer: "Td7d", want: Pushed},
		{name: "dealer bust means win", player: "8c5d", dealer: "Th7d5c", want: Won},
		{name: "busted hand loses to standing dealer", player: "8c9d5h", dealer: "Th7d", want: Lost},
		{name: "busted hand loses even when dealer busts", player: "8c9d5h", dealer: "Th7d5c", want: Lost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := mk(t, tt.player)
			dealer := mk(t, tt.dealer)
			assert.Equal(t, tt.want, resolveOutcome(player, dealer))
		})
	}
}

func TestSeatStrings(t *testing.T) {
	assert.Equal(t, "Dealer", Dealer.String())
	assert.Equal(t, "Player 1", Seat1.String())
	assert.Equal(t, "Player 4", Seat4.String())
}
