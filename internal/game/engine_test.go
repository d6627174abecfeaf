package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapjackhq/tapjack/internal/randutil"
)

// playStacked runs one round against a stacked deck. The card string covers
// the two seed passes (Seat1..Seat4 then Dealer, twice) followed by every
// draw the scenario needs.
func playStacked(t *testing.T, cards string, actions []Action) (*RoundResult, *recordingView, *scriptedInput) {
	t.Helper()
	input := &scriptedInput{actions: actions}
	view := &recordingView{}
	e := NewEngine(randutil.New(1), input, view, testLogger(), WithDeck(stackedDeck(cards)))
	res := e.PlayRound(1)
	require.Empty(t, view.diags, "no diagnostics expected")
	return res, view, input
}

func TestRoundTapjackOnSeedHand(t *testing.T) {
	// Seat1 is dealt Ace+King: terminal tapjack with no hit/stay prompt.
	// Dealer holds a soft 17 (A,6) and must draw exactly one more card.
	res, view, input := playStacked(t,
		"As2c3c4cAh"+"Ks9d9h9s6s"+"Td",
		[]Action{Stay, Stay, Stay})

	s1 := res.Seat(Seat1)
	assert.Equal(t, StatusTapjack, s1.Primary.Status)
	assert.Equal(t, 21, s1.Primary.Value)
	assert.Equal(t, Won, s1.Primary.Outcome)
	assert.False(t, s1.Secondary.Played)

	assert.True(t, view.has(fmt.Sprintf("msg:%s:%d", Seat1, MsgTapjack)))
	assert.False(t, view.has(fmt.Sprintf("msg:%s:%d", Seat1, MsgHitOrStay)),
		"a seed 21 is never offered hit/stay")

	// Soft 17 continuation: dealer drew a ten and stopped on hard 17.
	assert.Equal(t, 17, res.DealerValue)
	assert.False(t, res.DealerBusted)
	assert.True(t, view.has(fmt.Sprintf("dealer:17:%d", MsgDealerHits)))

	assert.Equal(t, Lost, res.Seat(Seat2).Primary.Outcome)
	assert.Equal(t, Lost, res.Seat(Seat3).Primary.Outcome)
	assert.Equal(t, Lost, res.Seat(Seat4).Primary.Outcome)
	assert.Equal(t, 3, input.consumed(), "only the three other seats decide")
}

func TestRoundHitIntoBust(t *testing.T) {
	// Seat1 holds 8+9=17, hits, draws a 5 and busts at 22 with no soft aces.
	res, view, _ := playStacked(t,
		"8c2c3c4cTh"+"9c9d9h9s7d"+"5h",
		[]Action{Hit, Stay, Stay, Stay})

	s1 := res.Seat(Seat1)
	assert.Equal(t, StatusBusted, s1.Primary.Status)
	assert.Equal(t, 22, s1.Primary.Value)
	assert.Equal(t, Lost, s1.Primary.Outcome)
	assert.True(t, view.has(fmt.Sprintf("msg:%s:%d", Seat1, MsgBusted)))

	// Dealer sat on hard 17 from the start.
	assert.Equal(t, 17, res.DealerValue)
	assert.False(t, view.has(fmt.Sprintf("dealer:17:%d", MsgDealerHits)),
		"dealer never hits hard 17")
}

func TestRoundSplitPlaysBothHands(t *testing.T) {
	// Seat1 splits a pair of eights; each half gets one fresh card and is
	// then played to completion, primary first.
	res, view, input := playStacked(t,
		"8c2c3c4cTh"+"8d9d9h9s7d"+"2h3h",
		[]Action{Hit, Stay, Stay, Stay, Stay, Stay})

	s1 := res.Seat(Seat1)
	assert.True(t, s1.Primary.Played)
	assert.True(t, s1.Secondary.Played)
	assert.Equal(t, StatusStood, s1.Primary.Status)
	assert.Equal(t, StatusStood, s1.Secondary.Status)
	assert.Equal(t, 10, s1.Primary.Value, "8+2")
	assert.Equal(t, 11, s1.Secondary.Value, "8+3")
	assert.Equal(t, Lost, s1.Primary.Outcome)
	assert.Equal(t, Lost, s1.Secondary.Outcome)

	assert.True(t, view.has(fmt.Sprintf("msg:%s:%d", Seat1, MsgSplit)))
	assert.Equal(t, 6, input.consumed())
}

func TestRoundSplitOfferIsOneShot(t *testing.T) {
	res, view, input := playStacked(t,
		"8c2c3c4cTh"+"8d9d9h9s7d",
		[]Action{Stay, Stay, Stay, Stay, Stay})

	s1 := res.Seat(Seat1)
	assert.False(t, s1.Secondary.Played, "declined split leaves one hand")
	assert.Equal(t, StatusStood, s1.Primary.Status)
	assert.Equal(t, 16, s1.Primary.Value, "pair of eights kept together")

	offers := 0
	token := fmt.Sprintf("msg:%s:%d", Seat1, MsgSplitOffer)
	for _, c := range view.calls {
		if c == token {
			offers++
		}
	}
	assert.Equal(t, 1, offers, "split offered exactly once")
	assert.Equal(t, 5, input.consumed())
}

func TestRoundDealerBustPaysTheTable(t *testing.T) {
	res, view, _ := playStacked(t,
		"Kc2c3c4c6s"+"Td9d9h9s9c"+"Kh",
		[]Action{Stay, Stay, Stay, Stay})

	assert.True(t, res.DealerBusted)
	assert.Equal(t, 25, res.DealerValue)
	assert.True(t, view.has(fmt.Sprintf("dealer:25:%d", MsgDealerBusted)))

	for seat := Seat1; seat <= Seat4; seat++ {
		assert.Equal(t, Won, res.Seat(seat).Primary.Outcome, "%s beats a busted dealer", seat)
	}
}

func TestRoundPushOnEqualValues(t *testing.T) {
	// Seat1 stands on 20 against a dealer 20.
	res, _, _ := playStacked(t,
		"Kc2c3c4cTh"+"Td9d9h9sJc",
		[]Action{Stay, Stay, Stay, Stay})

	assert.Equal(t, 20, res.DealerValue)
	assert.Equal(t, Pushed, res.Seat(Seat1).Primary.Outcome)
	assert.Equal(t, Lost, res.Seat(Seat2).Primary.Outcome)
}
