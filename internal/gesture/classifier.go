// Package gesture turns a stream of raw distance samples into committed
// player decisions. A distance falls into one of two disjoint zones (hit,
// stay) or the surrounding dead zone; a run-length debounce commits an action
// only after enough consecutive samples agree.
package gesture

import (
	"github.com/charmbracelet/log"

	"github.com/tapjackhq/tapjack/internal/game"
)

// Sampler yields one raw distance measurement per call. Sample blocks for the
// duration of the physical pulse-echo measurement and always eventually
// returns a finite value; a failed or out-of-range reading lands in the dead
// zone by construction.
type Sampler interface {
	Sample() float64
}

// Config defines the gesture zones and debounce sensitivity. Distances are in
// the sampler's units (centimeters on the reference hardware).
type Config struct {
	// HitNear is the near edge of the hit zone.
	HitNear float64
	// StayNear is the near edge of the stay zone.
	StayNear float64
	// Width is the extent of both zones beyond their near edges.
	Width float64
	// Threshold is the consecutive same-zone sample count a gesture must
	// exceed before it commits.
	Threshold int
}

// DefaultConfig returns the zone layout tuned for the reference sensor rig
func DefaultConfig() Config {
	return Config{
		HitNear:   8.0,
		StayNear:  35.0,
		Width:     22.0,
		Threshold: 200,
	}
}

// Classifier debounces zone classifications into committed actions
type Classifier struct {
	sampler Sampler
	cfg     Config
	logger  *log.Logger
}

// NewClassifier creates a classifier over a sampler
func NewClassifier(sampler Sampler, cfg Config, logger *log.Logger) *Classifier {
	return &Classifier{
		sampler: sampler,
		cfg:     cfg,
		logger:  logger.WithPrefix("gesture"),
	}
}

// Classify maps a single distance to its zone
func (c *Classifier) Classify(distance float64) game.Action {
	switch {
	case distance > c.cfg.HitNear && distance < c.cfg.HitNear+c.cfg.Width:
		return game.Hit
	case distance > c.cfg.StayNear && distance < c.cfg.StayNear+c.cfg.Width:
		return game.Stay
	default:
		return game.NoAction
	}
}

// Await blocks until one action has been sustained past the debounce
// threshold and returns it. Three run-length counters track the zones; every
// fresh sample increments its zone's counter and zeroes the other two, so an
// alternating stream never commits. NoAction commits like the others: a
// clear gesture area is itself a committed observation.
func (c *Classifier) Await() game.Action {
	var hits, stays, nones int
	for {
		switch c.Classify(c.sampler.Sample()) {
		case game.Hit:
			stays, nones = 0, 0
			hits++
			if hits > c.cfg.Threshold {
				return game.Hit
			}
		case game.Stay:
			hits, nones = 0, 0
			stays++
			if stays > c.cfg.Threshold {
				return game.Stay
			}
		default:
			hits, stays = 0, 0
			nones++
			if nones > c.cfg.Threshold {
				return game.NoAction
			}
		}
	}
}

// UserInput blocks until a fresh committed decision arrives. The handshake
// has two mandatory phases: first wait for the gesture area to commit clear,
// then wait for a hit or stay. A lingering gesture from the previous decision
// can therefore never double-fire.
func (c *Classifier) UserInput() game.Action {
	for c.Await() != game.NoAction {
	}
	for {
		if action := c.Await(); action != game.NoAction {
			c.logger.Debug("gesture committed", "action", action)
			return action
		}
	}
}
