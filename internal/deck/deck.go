package deck

import (
	"errors"
	rand "math/rand/v2"
)

// Size is the number of cards in a single deck
const Size = 52

// ErrExhausted is returned by Draw when every card has been dealt. Round
// bookkeeping keeps normal play far under 52 cards, so hitting this is a
// correctness bug upstream, not a reshuffle cue.
var ErrExhausted = errors.New("deck exhausted")

// Deck is an ordered single deck with a cursor over the undealt cards.
// The cursor only advances within a round and resets on Shuffle.
type Deck struct {
	cards [Size]Card
	next  int
}

// New returns an initialized, unshuffled deck
func New() *Deck {
	d := &Deck{}
	d.Initialize()
	return d
}

// Initialize deterministically populates the 52 cards as 4 suits x 13 ranks
// and rewinds the cursor. Idempotent.
func (d *Deck) Initialize() {
	i := 0
	for suit := Spades; suit <= Hearts; suit++ {
		for rank := Ace; rank <= King; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.next = 0
}

// Shuffle rewinds the cursor and permutes the deck in place using the
// reference firmware's swap scheme: every position is swapped with an
// independently chosen position in [0,52). This is not Fisher-Yates; the
// permutation stays bit-for-bit compatible with the hardware build.
func (d *Deck) Shuffle(rng *rand.Rand) {
	d.next = 0
	for i := range d.cards {
		j := rng.IntN(Size)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw returns the next undealt card and advances the cursor
func (d *Deck) Draw() (Card, error) {
	if d.next >= Size {
		return Card{}, ErrExhausted
	}
	card := d.cards[d.next]
	d.next++
	return card, nil
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return Size - d.next
}

// Load overwrites the front of the deck with the given cards and rewinds the
// cursor, leaving the rest of the order untouched. For deterministic tests.
func (d *Deck) Load(cards []Card) {
	copy(d.cards[:], cards)
	d.next = 0
}
