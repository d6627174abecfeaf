package sensor

import "github.com/coder/quartz"

// SeedSource supplies the one integer sample consumed at process start to
// seed the shuffle RNG. The reference hardware reads a light-dependent
// voltage off the ADC.
type SeedSource interface {
	Seed() int64
}

// FixedSeed replays a known seed value, standing in for the ADC in tests and
// deterministic replays.
type FixedSeed int64

// Seed returns the fixed value
func (f FixedSeed) Seed() int64 {
	return int64(f)
}

// ClockSeed derives a seed from the wall clock, for builds with no ADC
// wired. A nil Clock uses the real one.
type ClockSeed struct {
	Clock quartz.Clock
}

// Seed returns the current clock reading in nanoseconds
func (c ClockSeed) Seed() int64 {
	clock := c.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	return clock.Now().UnixNano()
}
