package game

import (
	"errors"

	"github.com/tapjackhq/tapjack/internal/deck"
)

// NumPlayers is the number of player seats at the table
const NumPlayers = 4

// Seat identifies a position at the table
type Seat int

const (
	Dealer Seat = iota
	Seat1
	Seat2
	Seat3
	Seat4
)

// String returns the display name of the seat
func (s Seat) String() string {
	switch s {
	case Dealer:
		return "Dealer"
	case Seat1:
		return "Player 1"
	case Seat2:
		return "Player 2"
	case Seat3:
		return "Player 3"
	case Seat4:
		return "Player 4"
	default:
		return "?"
	}
}

// ErrNotSplittable is a caller contract violation: split was requested on a
// hand whose first two ranks differ or that was already split this round.
var ErrNotSplittable = errors.New("hand is not splittable")

// SeatHands is one player seat's pair of hand slots. Secondary stays empty
// unless the seat split this round.
type SeatHands struct {
	Primary   Hand
	Secondary Hand
}

// RoundState holds every hand in play for a single round. It is constructed
// fresh at the top of each round and discarded once outcomes are displayed;
// the shuffle RNG is the only cross-round state in the system.
type RoundState struct {
	Players [NumPlayers]SeatHands
	Dealer  Hand
}

// NewRoundState returns a state with all hands empty
func NewRoundState() *RoundState {
	return &RoundState{}
}

// Hands returns the primary and secondary hand of a player seat
func (rs *RoundState) Hands(seat Seat) (primary, secondary *Hand) {
	sh := &rs.Players[seat-Seat1]
	return &sh.Primary, &sh.Secondary
}

// Split moves the second card of the seat's primary hand into its empty
// secondary hand and deals one fresh card to each half. Splitting a pair of
// Aces leaves both one-card hands at a soft 11 before the fresh cards land.
func (rs *RoundState) Split(seat Seat, d *deck.Deck) error {
	primary, secondary := rs.Hands(seat)
	if !primary.CanSplit() || !secondary.Empty() {
		return ErrNotSplittable
	}

	moved := primary.removeSplitCard()
	secondary.receiveSplitCard(moved)
	if moved.Rank == deck.Ace {
		// The pair had one Ace demoted to 1; after the split each hand
		// holds a lone Ace counting 11 again.
		primary.value = 11
		primary.softCount = 1
		secondary.value = 11
		secondary.softCount = 1
	}

	for _, h := range []*Hand{primary, secondary} {
		c, err := d.Draw()
		if err != nil {
			return err
		}
		if err := h.DealCard(c); err != nil {
			return err
		}
	}
	return nil
}

// Outcome is the per seat-hand result of a round
type Outcome int

const (
	Lost Outcome = iota
	Won
	Pushed
)

// String returns the display form of the outcome
func (o Outcome) String() string {
	switch o {
	case Won:
		return "WON"
	case Lost:
		return "LOST"
	case Pushed:
		return "PUSHED"
	default:
		return "?"
	}
}

// resolveOutcome scores one player hand against the dealer. Bust is checked
// first: a busted hand never wins or pushes, whatever the dealer did.
func resolveOutcome(h, dealer *Hand) Outcome {
	switch {
	case h.Busted():
		return Lost
	case dealer.Busted():
		return Won
	case h.Value() == dealer.Value():
		return Pushed
	case h.Value() > dealer.Value():
		return Won
	default:
		return Lost
	}
}
