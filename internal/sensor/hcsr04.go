// Package sensor models the hardware collaborators at the boundary of the
// game core: the ultrasonic range finder that feeds the gesture classifier
// and the seed source that feeds the shuffle RNG.
package sensor

import "sync/atomic"

const (
	// usPerCM is the HC-SR04 echo pulse width per centimeter of range.
	usPerCM = 58.2
	// timerHz is the capture timer clock on the reference board.
	timerHz = 8_000_000
	// captureRange is the native span of the 16-bit capture register; each
	// recorded overflow extends the measurement by this many ticks.
	captureRange = 65535
)

// OverflowCounter is the process-wide counter incremented by the periodic
// timer-overflow signal. The handler can fire between any two instructions
// of the main control flow, so the count is read-and-cleared in one atomic
// exchange; nothing outside this package ever touches it.
type OverflowCounter struct {
	n atomic.Int64
}

// Tick records one timer overflow. Called from the overflow signal handler.
func (o *OverflowCounter) Tick() {
	o.n.Add(1)
}

// TakeAndReset atomically returns the accumulated count and clears it
func (o *OverflowCounter) TakeAndReset() int64 {
	return o.n.Swap(0)
}

// EchoLine is the pulse-timing driver for the range finder. Implementations
// block for the duration of the physical measurement; there is no error
// channel and no timeout. A stalled line stalls the game.
type EchoLine interface {
	// Trigger raises the trigger pin long enough to start a measurement.
	Trigger()
	// WaitRisingEdge blocks until the echo signal goes high.
	WaitRisingEdge()
	// WaitFallingEdge blocks until the echo drops and returns the capture
	// register's count at the falling edge.
	WaitFallingEdge() uint16
}

// HCSR04 converts echo pulse widths into centimeter distances. It owns the
// overflow counter that extends the capture register past its native width.
type HCSR04 struct {
	line     EchoLine
	overflow *OverflowCounter
}

// NewHCSR04 creates a range finder over a pulse-timing line
func NewHCSR04(line EchoLine, overflow *OverflowCounter) *HCSR04 {
	return &HCSR04{line: line, overflow: overflow}
}

// Sample performs one pulse-echo measurement and returns the distance in
// centimeters. Overflows accumulated before the rising edge belong to the
// previous wait and are discarded.
func (s *HCSR04) Sample() float64 {
	s.line.Trigger()
	s.line.WaitRisingEdge()
	s.overflow.TakeAndReset()
	raw := s.line.WaitFallingEdge()
	ticks := int64(raw) + captureRange*s.overflow.TakeAndReset()
	return float64(ticks) / (usPerCM * timerHz / 1e6)
}
