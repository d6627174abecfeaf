package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// scriptedInput feeds a fixed decision sequence to the engine and fails loudly
// when the engine asks for more than the script holds.
type scriptedInput struct {
	actions []Action
	next    int
}

func (s *scriptedInput) UserInput() Action {
	if s.next >= len(s.actions) {
		panic(fmt.Sprintf("decision source exhausted after %d actions", len(s.actions)))
	}
	a := s.actions[s.next]
	s.next++
	return a
}

func (s *scriptedInput) consumed() int {
	return s.next
}

// recordingView captures the engine's display calls as compact tokens so
// tests can assert on ordering without caring about layout.
type recordingView struct {
	calls []string
	diags []error
}

func (v *recordingView) record(format string, args ...any) {
	v.calls = append(v.calls, fmt.Sprintf(format, args...))
}

func (v *recordingView) Intro()                 { v.record("intro") }
func (v *recordingView) Blank()                 { v.record("blank") }
func (v *recordingView) RoundBanner(round int)  { v.record("round:%d", round) }
func (v *recordingView) TurnBanner(seat Seat)   { v.record("turn:%s", seat) }
func (v *recordingView) ShowHand(st *RoundState, seat Seat, hand *Hand) {
	v.record("hand:%s:%d", seat, hand.Value())
}
func (v *recordingView) ShowHandMessage(st *RoundState, seat Seat, hand *Hand, msg Message) {
	v.record("msg:%s:%d", seat, msg)
}
func (v *recordingView) DealerUpdate(st *RoundState, msg Message) {
	v.record("dealer:%d:%d", st.Dealer.Value(), msg)
}
func (v *recordingView) Results(st *RoundState, res *RoundResult) {
	v.record("results")
}
func (v *recordingView) Diagnostic(err error) {
	v.diags = append(v.diags, err)
}

func (v *recordingView) has(token string) bool {
	for _, c := range v.calls {
		if c == token {
			return true
		}
	}
	return false
}

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}
