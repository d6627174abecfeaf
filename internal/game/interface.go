package game

// Action is a committed player decision
type Action int

const (
	NoAction Action = iota
	Hit
	Stay
)

// String returns the display form of the action
func (a Action) String() string {
	switch a {
	case Hit:
		return "HIT"
	case Stay:
		return "STAY"
	case NoAction:
		return "NO_ACTION"
	default:
		return "?"
	}
}

// DecisionSource supplies committed player decisions. UserInput blocks until
// a fresh decision arrives; it never returns NoAction. The gesture classifier
// is the production implementation.
type DecisionSource interface {
	UserInput() Action
}

// Message identifies a table message for the view to render. The view owns
// the wording; the engine only says what happened.
type Message int

const (
	MsgNone Message = iota
	MsgSplitOffer
	MsgHitOrStay
	MsgHit
	MsgStayed
	MsgSplit
	MsgBusted
	MsgTapjack
	MsgDealerHits
	MsgDealerStays
	MsgDealerBusted
)

// View receives every screen the engine wants painted, in strict call order.
// Implementations own all layout and pacing; the engine blocks until each
// call returns.
type View interface {
	// Intro paints the welcome banner once at startup.
	Intro()
	// Blank clears the terminal between screens.
	Blank()
	// RoundBanner announces a new round.
	RoundBanner(round int)
	// TurnBanner announces whose turn is starting.
	TurnBanner(seat Seat)
	// ShowHand paints the table recap plus the acting seat's current hand.
	ShowHand(st *RoundState, seat Seat, hand *Hand)
	// ShowHandMessage is ShowHand with a prompt or result line under it.
	ShowHandMessage(st *RoundState, seat Seat, hand *Hand, msg Message)
	// DealerUpdate paints the dealer recap, optionally with a status line.
	DealerUpdate(st *RoundState, msg Message)
	// Results paints the end-of-round outcome screen.
	Results(st *RoundState, res *RoundResult)
	// Diagnostic reports an abandoned operation to the operator.
	Diagnostic(err error)
}
