package gesture

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapjackhq/tapjack/internal/game"
)

// streamSampler replays a scripted distance stream, holding the last value
// forever once the script runs out.
type streamSampler struct {
	distances []float64
	next      int
}

func (s *streamSampler) Sample() float64 {
	if s.next >= len(s.distances) {
		return s.distances[len(s.distances)-1]
	}
	d := s.distances[s.next]
	s.next++
	return d
}

func repeat(d float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = d
	}
	return out
}

// testConfig keeps the production zone layout but a small threshold so
// scripts stay readable.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Threshold = 3
	return cfg
}

func newTestClassifier(distances []float64) *Classifier {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return NewClassifier(&streamSampler{distances: distances}, testConfig(), logger)
}

func TestClassifyZones(t *testing.T) {
	c := newTestClassifier(nil)
	cfg := testConfig()

	tests := []struct {
		name     string
		distance float64
		want     game.Action
	}{
		{name: "inside hit zone", distance: 15.0, want: game.Hit},
		{name: "inside stay zone", distance: 40.0, want: game.Stay},
		{name: "below hit zone", distance: 5.0, want: game.NoAction},
		{name: "between zones", distance: 32.0, want: game.NoAction},
		{name: "beyond stay zone", distance: 80.0, want: game.NoAction},
		{name: "hit near edge is exclusive", distance: cfg.HitNear, want: game.NoAction},
		{name: "hit far edge is exclusive", distance: cfg.HitNear + cfg.Width, want: game.NoAction},
		{name: "stay near edge is exclusive", distance: cfg.StayNear, want: game.NoAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.distance))
		})
	}
}

func TestAwaitCommitsAfterSustainedZone(t *testing.T) {
	cfg := testConfig()
	// Threshold+1 consecutive hit-zone samples commit a HIT.
	c := newTestClassifier(repeat(15.0, cfg.Threshold+1))
	assert.Equal(t, game.Hit, c.Await())
}

func TestAwaitResetsRivalCounters(t *testing.T) {
	cfg := testConfig()
	// Almost-committed hit runs keep getting interrupted; only the final
	// sustained stay run commits.
	var stream []float64
	for i := 0; i < 5; i++ {
		stream = append(stream, repeat(15.0, cfg.Threshold)...)
		stream = append(stream, 40.0)
	}
	stream = append(stream, repeat(40.0, cfg.Threshold+1)...)

	c := newTestClassifier(stream)
	assert.Equal(t, game.Stay, c.Await())
}

func TestAwaitAlternatingStreamNeverCommitsEarly(t *testing.T) {
	cfg := testConfig()
	// Strict alternation: every counter resets before reaching threshold.
	var stream []float64
	for i := 0; i < 50; i++ {
		stream = append(stream, 15.0, 40.0)
	}
	// Terminate the stream with a clear commit so Await returns.
	stream = append(stream, repeat(80.0, cfg.Threshold+1)...)

	c := newTestClassifier(stream)
	assert.Equal(t, game.NoAction, c.Await())
	// Exactly the alternating prefix plus the clear run was consumed.
	sampler := c.sampler.(*streamSampler)
	assert.Equal(t, len(stream), sampler.next)
}

func TestUserInputRequiresClearThenCommit(t *testing.T) {
	cfg := testConfig()

	// A lingering stay gesture, then a clear, then a hit.
	var stream []float64
	stream = append(stream, repeat(40.0, cfg.Threshold+1)...) // leftover gesture
	stream = append(stream, repeat(80.0, cfg.Threshold+1)...) // area clears
	stream = append(stream, repeat(15.0, cfg.Threshold+1)...) // fresh decision

	c := newTestClassifier(stream)
	assert.Equal(t, game.Hit, c.UserInput(), "the lingering STAY must not fire")
}

func TestUserInputCommitsFromClearState(t *testing.T) {
	cfg := testConfig()

	var stream []float64
	stream = append(stream, repeat(80.0, cfg.Threshold+1)...)
	stream = append(stream, repeat(15.0, cfg.Threshold+1)...)

	c := newTestClassifier(stream)
	assert.Equal(t, game.Hit, c.UserInput())

	// The commit needed every scripted sample: no decision on a first sample.
	sampler := c.sampler.(*streamSampler)
	require.Equal(t, len(stream), sampler.next)
}

func TestDefaultConfigZonesAreDisjoint(t *testing.T) {
	cfg := DefaultConfig()
	assert.Less(t, cfg.HitNear+cfg.Width, cfg.StayNear+1e-9,
		"hit zone must end before the stay zone begins")
	assert.Positive(t, cfg.Threshold)
}
