package game

import (
	"errors"

	"github.com/tapjackhq/tapjack/internal/deck"
)

// MaxHandCards bounds the cards a single hand can hold. Normal games never
// approach it.
const MaxHandCards = 12

// ErrHandFull is returned by DealCard once a hand holds MaxHandCards cards
var ErrHandFull = errors.New("hand full")

// Hand is one seat-hand: an ordered card sequence with blackjack value
// bookkeeping maintained incrementally by DealCard. DealCard is the only
// code path that mutates the value fields; everything else derives from it.
type Hand struct {
	cards     []deck.Card
	faceDown  []bool
	value     int
	softCount int
	busted    bool
}

// Reset empties the hand
func (h *Hand) Reset() {
	h.cards = h.cards[:0]
	h.faceDown = h.faceDown[:0]
	h.value = 0
	h.softCount = 0
	h.busted = false
}

// DealCard appends a card and updates the running value. An Ace counts 11
// and bumps the soft count; if the hand then exceeds 21 a single soft Ace is
// reinterpreted as 1, and only once per dealt card. With no soft Ace left the
// hand busts.
func (h *Hand) DealCard(c deck.Card) error {
	if len(h.cards) >= MaxHandCards {
		return ErrHandFull
	}
	h.cards = append(h.cards, c)
	h.faceDown = append(h.faceDown, false)

	h.value += c.Rank.Points()
	if c.Rank == deck.Ace {
		h.softCount++
	}
	if h.value > 21 {
		if h.softCount > 0 {
			h.value -= 10
			h.softCount--
		} else {
			h.busted = true
		}
	}
	return nil
}

// Value returns the hand's blackjack value after soft-Ace resolution
func (h *Hand) Value() int {
	return h.value
}

// SoftCount returns the number of Aces still counted as 11
func (h *Hand) SoftCount() int {
	return h.softCount
}

// IsSoft reports whether the hand still counts an Ace as 11
func (h *Hand) IsSoft() bool {
	return h.softCount > 0
}

// Busted reports whether the value exceeded 21 with no soft Ace remaining
func (h *Hand) Busted() bool {
	return h.busted
}

// Empty reports whether the hand has no cards. A seat's secondary hand stays
// empty unless a split occurred.
func (h *Hand) Empty() bool {
	return len(h.cards) == 0
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return len(h.cards)
}

// Card returns the i-th card dealt to the hand
func (h *Hand) Card(i int) deck.Card {
	return h.cards[i]
}

// Cards returns the card sequence. The slice is shared; callers must not
// mutate it.
func (h *Hand) Cards() []deck.Card {
	return h.cards
}

// FaceDown reports whether the i-th card is hidden from display
func (h *Hand) FaceDown(i int) bool {
	return h.faceDown[i]
}

// SetFaceDown hides or reveals the i-th card. Only the dealer's first card is
// ever hidden, and only until all seats have acted.
func (h *Hand) SetFaceDown(i int, hidden bool) {
	h.faceDown[i] = hidden
}

// CanSplit reports whether the hand is a splittable pair: exactly two cards
// of equal rank.
func (h *Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Rank == h.cards[1].Rank
}

// removeSplitCard pops the second card for a split, backing its scoring
// contribution out of the running value. Only valid on a two-card pair.
func (h *Hand) removeSplitCard() deck.Card {
	c := h.cards[1]
	h.cards = h.cards[:1]
	h.faceDown = h.faceDown[:1]
	h.value -= c.Rank.Points()
	if c.Rank == deck.Ace {
		h.softCount--
	}
	return c
}

// receiveSplitCard seeds an empty secondary hand with the card moved across
// by a split.
func (h *Hand) receiveSplitCard(c deck.Card) {
	h.cards = append(h.cards, c)
	h.faceDown = append(h.faceDown, false)
	h.value += c.Rank.Points()
	if c.Rank == deck.Ace {
		h.softCount++
	}
}
