package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/tapjackhq/tapjack/internal/game"
)

// Geometry is the fixed character grid of the terminal
type Geometry struct {
	Width  int
	Height int
}

// DefaultGeometry matches the reference rig's terminal at 175% scaling
func DefaultGeometry() Geometry {
	return Geometry{Width: 165, Height: 28}
}

// Delays pace the screen flow so a human can read each frame before the
// next one scrolls in
type Delays struct {
	// Input settles the display right after a decision lands.
	Input time.Duration
	// Refresh paces transient frames.
	Refresh time.Duration
	// Read holds frames the player needs time to take in.
	Read time.Duration
	// Results holds the end-of-round screen.
	Results time.Duration
}

// DefaultDelays returns the pacing of the reference rig
func DefaultDelays() Delays {
	return Delays{
		Input:   200 * time.Millisecond,
		Refresh: 2 * time.Second,
		Read:    4 * time.Second,
		Results: 10 * time.Second,
	}
}

var introArt = []string{
	` ______   ______     ______     __     ______     ______     __  __`,
	`/\__  _\ /\  __ \   /\  == \   /\ \   /\  __ \   /\  ___\   /\ \/ /`,
	`\/_/\ \/ \ \  __ \  \ \  _-/  _\_\ \  \ \  __ \  \ \ \____  \ \  _"-.`,
	`   \ \_\  \ \_\ \_\  \ \_\   /\_____\  \ \_\ \_\  \ \_____\  \ \_\ \_\`,
	`    \/_/   \/_/\/_/   \/_/   \/_____/   \/_/\/_/   \/_____/   \/_/\/_/`,
}

// Screen renders the game onto a fixed-size character grid through a
// Transport. Every frame is exactly Geometry.Height lines: content first,
// blank fill after, so successive frames scroll cleanly on a dumb terminal.
type Screen struct {
	transport Transport
	geo       Geometry
	delays    Delays
	clock     quartz.Clock
	logger    *log.Logger
	fill      int
}

// NewScreen creates a renderer over a transport. A nil clock uses the real
// one.
func NewScreen(transport Transport, geo Geometry, delays Delays, clock quartz.Clock, logger *log.Logger) *Screen {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Screen{
		transport: transport,
		geo:       geo,
		delays:    delays,
		clock:     clock,
		logger:    logger.WithPrefix("display"),
	}
}

var _ game.View = (*Screen)(nil)

// Intro paints the welcome banner
func (s *Screen) Intro() {
	s.startFrame()
	s.newline()
	s.newline()
	s.centerLine("WELCOME TO TOUCHLESS AUTOMATED PLAY BLACKJACK")
	s.centerLine("AKA")
	for _, row := range introArt {
		s.centerLine(row)
	}
	s.endFrame(s.delays.Refresh)

	s.startFrame()
	for i := 0; i < 13; i++ {
		s.newline()
	}
	s.centerLine("CREATED BY")
	s.centerLine("the Tapjack table crew")
	s.endFrame(s.delays.Refresh)
}

// Blank scrolls in an empty frame
func (s *Screen) Blank() {
	s.startFrame()
	s.endFrame(s.delays.Refresh)
}

// RoundBanner announces a round
func (s *Screen) RoundBanner(round int) {
	s.banner(fmt.Sprintf("Round %d", round))
}

// TurnBanner announces whose turn begins
func (s *Screen) TurnBanner(seat game.Seat) {
	if seat == game.Dealer {
		s.banner("DEALER'S TURN")
	} else {
		s.banner(fmt.Sprintf("PLAYER %d'S TURN", seatNum(seat)))
	}
}

// ShowHand paints the recap and the acting hand with no message line
func (s *Screen) ShowHand(st *game.RoundState, seat game.Seat, hand *game.Hand) {
	s.handFrame(st, seat, hand, "")
	s.endFrame(s.delays.Refresh)
}

// ShowHandMessage paints the recap and the acting hand with a prompt or a
// result line. Prompt frames return immediately so the engine can block on
// the decision source; result frames hold long enough to read.
func (s *Screen) ShowHandMessage(st *game.RoundState, seat game.Seat, hand *game.Hand, msg game.Message) {
	s.handFrame(st, seat, hand, s.messageText(st, msg))
	s.endFrame(s.messageDelay(msg))
}

// DealerUpdate paints the dealer recap, optionally with a status line
func (s *Screen) DealerUpdate(st *game.RoundState, msg game.Message) {
	s.startFrame()
	s.upper(st, game.Dealer)
	if msg != game.MsgNone {
		s.newline()
		s.newline()
		s.centerText(s.messageText(st, msg))
	}
	s.endFrame(s.messageDelay(msg))
}

// Results paints the end-of-round outcome screen
func (s *Screen) Results(st *game.RoundState, res *game.RoundResult) {
	s.startFrame()
	s.upper(st, game.Dealer)
	s.newline()
	if res.DealerBusted {
		s.centerText("Dealer BUSTED!")
	} else {
		s.centerText(fmt.Sprintf("Dealer stays with %d", res.DealerValue))
	}
	s.newline()
	s.newline()
	s.newline()

	for seat := game.Seat1; seat <= game.Seat4; seat++ {
		sr := res.Seat(seat)
		line := fmt.Sprintf("      Player %d %s with %d", seatNum(seat), sr.Primary.Outcome, sr.Primary.Value)
		if sr.Secondary.Played {
			line += fmt.Sprintf(" and %s with %d", sr.Secondary.Outcome, sr.Secondary.Value)
		}
		s.send(line)
		s.newline()
		s.newline()
	}
	s.endFrame(s.delays.Results)
}

// Diagnostic reports an abandoned operation on the terminal, outside the
// frame flow
func (s *Screen) Diagnostic(err error) {
	s.logger.Error("diagnostic", "error", err)
	s.send("ERROR: " + err.Error())
	s.sendChar('\n')
}

// handFrame paints the recap plus the acting seat's current hand, with an
// optional message two lines below
func (s *Screen) handFrame(st *game.RoundState, seat game.Seat, hand *game.Hand, msg string) {
	s.startFrame()
	s.upper(st, seat)
	s.newline()
	s.centerLine(fmt.Sprintf("Your current hand: [%d]", hand.Value()))
	s.printHand(hand)
	if msg != "" {
		s.newline()
		s.newline()
		s.centerText(msg)
	}
}

// upper paints the turn header, every earlier seat's hand values, and the
// dealer's cards. Player frames recap only the seats up to the acting one;
// dealer frames recap the whole table.
func (s *Screen) upper(st *game.RoundState, acting game.Seat) {
	last := game.Seat4
	if acting == game.Dealer {
		s.send("DEALER'S TURN.  ")
	} else {
		s.send(fmt.Sprintf("PLAYER %d'S TURN.", seatNum(acting)))
		last = acting
	}
	s.send("\t\t\t\t")

	for seat := game.Seat1; seat <= last; seat++ {
		primary, secondary := st.Hands(seat)
		s.send(fmt.Sprintf("Player %d's hand: [%d]", seatNum(seat), primary.Value()))
		if !secondary.Empty() {
			s.send(fmt.Sprintf("[%d]", secondary.Value()))
		}
		s.send("\t")
	}
	s.newline()
	s.newline()
	s.centerLine("Dealer is showing:")
	s.printHand(&st.Dealer)
}

// printHand paints the full card art for a hand, centered
func (s *Screen) printHand(h *game.Hand) {
	n := h.Len()
	for row := 0; row < cardRows; row++ {
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteString(cardCell(row, h.Card(i), h.FaceDown(i)))
		}
		s.centerLine(b.String())
	}
}

func (s *Screen) banner(text string) {
	s.startFrame()
	for i := 0; i < 15; i++ {
		s.newline()
	}
	s.centerText(text)
	s.endFrame(s.delays.Refresh)
}

func (s *Screen) messageText(st *game.RoundState, msg game.Message) string {
	switch msg {
	case game.MsgSplitOffer:
		return "SPLIT? (HIT for YES) (STAY for NO)"
	case game.MsgHitOrStay:
		return "HIT or STAY?"
	case game.MsgHit:
		return "You hit!"
	case game.MsgStayed:
		return "You stayed!"
	case game.MsgSplit:
		return "You split!"
	case game.MsgBusted:
		return "You BUSTED!"
	case game.MsgTapjack:
		return "You got TAPJACK!"
	case game.MsgDealerHits:
		return "Dealer hits!"
	case game.MsgDealerStays:
		return fmt.Sprintf("Dealer stays with %d!", st.Dealer.Value())
	case game.MsgDealerBusted:
		return "Dealer BUSTED!"
	default:
		return ""
	}
}

// messageDelay picks the hold time for a frame. Prompts return immediately:
// the engine blocks on the gesture classifier right after, and the frame
// must already be on screen while the player gestures.
func (s *Screen) messageDelay(msg game.Message) time.Duration {
	switch msg {
	case game.MsgSplitOffer, game.MsgHitOrStay:
		return 0
	case game.MsgSplit:
		return s.delays.Input
	case game.MsgStayed, game.MsgBusted, game.MsgTapjack, game.MsgDealerStays, game.MsgDealerBusted:
		return s.delays.Read
	default:
		return s.delays.Refresh
	}
}

func (s *Screen) startFrame() {
	s.fill = s.geo.Height
}

// endFrame pads the frame out to the full terminal height, holds it, and
// emits the scroll separator
func (s *Screen) endFrame(hold time.Duration) {
	for s.fill > 0 {
		s.newline()
	}
	s.pause(hold)
	s.sendChar('\n')
}

func (s *Screen) pause(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := s.clock.NewTimer(d)
	<-timer.C
}

func (s *Screen) centerLine(text string) {
	s.centerText(text)
	s.newline()
}

func (s *Screen) centerText(text string) {
	if pad := (s.geo.Width - len(text)) / 2; pad > 0 {
		s.send(strings.Repeat(" ", pad))
	}
	s.send(text)
}

func (s *Screen) newline() {
	s.sendChar('\n')
	s.fill--
}

func (s *Screen) send(text string) {
	if err := s.transport.Send(text); err != nil {
		s.logger.Error("transport send failed", "error", err)
	}
}

func (s *Screen) sendChar(c byte) {
	if err := s.transport.SendChar(c); err != nil {
		s.logger.Error("transport send failed", "error", err)
	}
}

func seatNum(seat game.Seat) int {
	return int(seat-game.Seat1) + 1
}
