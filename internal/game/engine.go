package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/tapjackhq/tapjack/internal/deck"
)

// MaxRounds is the fixed number of rounds the table runs before the process
// is power-cycled
const MaxRounds = 999

// HandStatus is the terminal state a seat-hand reached in its turn
type HandStatus int

const (
	StatusUnplayed HandStatus = iota
	StatusStood
	StatusBusted
	StatusTapjack
)

// String returns the display form of the hand status
func (s HandStatus) String() string {
	switch s {
	case StatusUnplayed:
		return "unplayed"
	case StatusStood:
		return "stood"
	case StatusBusted:
		return "busted"
	case StatusTapjack:
		return "tapjack"
	default:
		return "?"
	}
}

// HandResult is the per seat-hand result of a round
type HandResult struct {
	Played  bool
	Status  HandStatus
	Value   int
	Outcome Outcome
}

// SeatResult is one player seat's pair of hand results
type SeatResult struct {
	Primary   HandResult
	Secondary HandResult
}

// RoundResult collects every seat-hand outcome of a round. It is exposed for
// display and tests and discarded with the round.
type RoundResult struct {
	Seats        [NumPlayers]SeatResult
	DealerValue  int
	DealerBusted bool
}

// Seat returns the result record of a player seat
func (r *RoundResult) Seat(seat Seat) *SeatResult {
	return &r.Seats[seat-Seat1]
}

// Engine drives rounds of blackjack. It is single-threaded: every
// decision blocks on the DecisionSource and every screen blocks on the View.
type Engine struct {
	deck    *deck.Deck
	rng     *rand.Rand
	input   DecisionSource
	view    View
	logger  *log.Logger
	stacked bool
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithDeck replaces the engine's deck and disables the per-round shuffle, so
// tests can stack known cards.
func WithDeck(d *deck.Deck) EngineOption {
	return func(e *Engine) {
		e.deck = d
		e.stacked = true
	}
}

// NewEngine creates an engine around a shuffle RNG, a decision source and a
// view
func NewEngine(rng *rand.Rand, input DecisionSource, view View, logger *log.Logger, opts ...EngineOption) *Engine {
	e := &Engine{
		deck:   deck.New(),
		rng:    rng,
		input:  input,
		view:   view,
		logger: logger.WithPrefix("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run shows the intro and plays rounds 1 through MaxRounds. It never returns
// early; shutdown is external.
func (e *Engine) Run() {
	e.view.Blank()
	e.view.Intro()
	e.view.Blank()
	for round := 1; round <= MaxRounds; round++ {
		e.PlayRound(round)
	}
}

// PlayRound plays one complete round and returns its results
func (e *Engine) PlayRound(round int) *RoundResult {
	e.view.RoundBanner(round)
	st := NewRoundState()
	if !e.stacked {
		e.deck.Shuffle(e.rng)
	}
	e.logger.Debug("round start", "round", round, "remaining", e.deck.Remaining())

	// Seed hands in casino order: two passes over the seats, dealer last.
	for pass := 0; pass < 2; pass++ {
		for seat := Seat1; seat <= Seat4; seat++ {
			primary, _ := st.Hands(seat)
			e.dealTo(primary)
		}
		e.dealTo(&st.Dealer)
	}
	st.Dealer.SetFaceDown(0, true)

	res := &RoundResult{}
	for seat := Seat1; seat <= Seat4; seat++ {
		e.view.Blank()
		e.view.TurnBanner(seat)
		e.playTurn(st, seat, res)
	}

	st.Dealer.SetFaceDown(0, false)
	e.dealerTurn(st)
	e.resolve(st, res)
	e.view.Results(st, res)
	return res
}

// playTurn resolves both of a seat's hands. The primary hand finishes
// completely before the secondary begins; the secondary is skipped when no
// split occurred.
func (e *Engine) playTurn(st *RoundState, seat Seat, res *RoundResult) {
	primary, secondary := st.Hands(seat)
	sr := res.Seat(seat)

	sr.Primary.Status = e.playHand(st, seat, primary, true)
	sr.Primary.Played = true

	if secondary.Empty() {
		return
	}
	sr.Secondary.Status = e.playHand(st, seat, secondary, false)
	sr.Secondary.Played = true
}

// playHand runs one hand's turn state machine to a terminal state. The split
// decision is offered at most once, and never to a secondary hand.
func (e *Engine) playHand(st *RoundState, seat Seat, h *Hand, offerSplit bool) HandStatus {
	for {
		e.view.ShowHand(st, seat, h)

		if offerSplit && h.CanSplit() {
			e.view.ShowHandMessage(st, seat, h, MsgSplitOffer)
			if e.input.UserInput() == Hit {
				e.view.ShowHandMessage(st, seat, h, MsgSplit)
				if err := st.Split(seat, e.deck); err != nil {
					e.logger.Error("split abandoned", "seat", seat, "error", err)
					e.view.Diagnostic(err)
				}
			}
			offerSplit = false
			continue
		}

		switch {
		case h.Busted():
			e.view.ShowHandMessage(st, seat, h, MsgBusted)
			return StatusBusted
		case h.Value() == 21:
			e.view.ShowHandMessage(st, seat, h, MsgTapjack)
			return StatusTapjack
		}

		e.view.ShowHandMessage(st, seat, h, MsgHitOrStay)
		switch action := e.input.UserInput(); action {
		case Hit:
			e.view.ShowHandMessage(st, seat, h, MsgHit)
			e.dealTo(h)
		case Stay:
			e.view.ShowHandMessage(st, seat, h, MsgStayed)
			return StatusStood
		default:
			e.logger.Error("unexpected action from decision source", "seat", seat, "action", action)
		}
	}
}

// dealerTurn runs the fixed dealer policy: draw below 17 and on soft 17,
// stop on hard 17 or better, stop on bust.
func (e *Engine) dealerTurn(st *RoundState) {
	d := &st.Dealer
	for {
		e.view.DealerUpdate(st, MsgNone)
		switch {
		case d.Busted():
			e.view.DealerUpdate(st, MsgDealerBusted)
			return
		case d.Value() < 17 || (d.Value() == 17 && d.IsSoft()):
			e.view.DealerUpdate(st, MsgDealerHits)
			e.dealTo(d)
		default:
			e.view.DealerUpdate(st, MsgDealerStays)
			return
		}
	}
}

// resolve scores every played seat-hand against the dealer
func (e *Engine) resolve(st *RoundState, res *RoundResult) {
	res.DealerValue = st.Dealer.Value()
	res.DealerBusted = st.Dealer.Busted()

	for seat := Seat1; seat <= Seat4; seat++ {
		primary, secondary := st.Hands(seat)
		sr := res.Seat(seat)

		sr.Primary.Value = primary.Value()
		sr.Primary.Outcome = resolveOutcome(primary, &st.Dealer)

		if !secondary.Empty() {
			sr.Secondary.Value = secondary.Value()
			sr.Secondary.Outcome = resolveOutcome(secondary, &st.Dealer)
		}
	}
}

// dealTo draws one card into the hand. A failed deal is reported and
// abandoned; the hand keeps whatever state it had.
func (e *Engine) dealTo(h *Hand) {
	if h.Len() >= MaxHandCards {
		e.logger.Error("deal abandoned", "error", ErrHandFull)
		e.view.Diagnostic(ErrHandFull)
		return
	}
	c, err := e.deck.Draw()
	if err != nil {
		e.logger.Error("deal abandoned", "error", err)
		e.view.Diagnostic(err)
		return
	}
	if err := h.DealCard(c); err != nil {
		e.logger.Error("deal abandoned", "error", err)
		e.view.Diagnostic(err)
	}
}
