package sensor

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
)

// outOfRange sits far beyond both gesture zones; exhausted or unset samplers
// read as a clear gesture area.
const outOfRange = 1000.0

// Replay yields distances from a recorded stream, one value per Sample call.
// Once the stream runs out every further sample reads out of range. It lets
// the control loop run without the sensor rig attached.
type Replay struct {
	distances []float64
	next      int
}

// NewReplay creates a replay over a fixed distance slice
func NewReplay(distances []float64) *Replay {
	return &Replay{distances: distances}
}

// Remaining reports how many recorded samples are left
func (r *Replay) Remaining() int {
	return len(r.distances) - r.next
}

// ReadReplay parses a recorded distance stream: one float per line, blank
// lines and #-comments skipped.
func ReadReplay(r io.Reader) (*Replay, error) {
	var distances []float64
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		d, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("replay line %d: %w", line, err)
		}
		distances = append(distances, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading replay: %w", err)
	}
	return &Replay{distances: distances}, nil
}

// Sample returns the next recorded distance
func (r *Replay) Sample() float64 {
	if r.next >= len(r.distances) {
		return outOfRange
	}
	d := r.distances[r.next]
	r.next++
	return d
}

// Manual is a sampler whose distance is set from another goroutine, used by
// the interactive simulator. Samples are paced at the given interval so the
// debounce threshold spans human-scale time like the real sensor loop; a
// zero interval samples freely. The zero value reads out of range.
type Manual struct {
	distance atomic.Value // float64
	clock    quartz.Clock
	interval time.Duration
}

// NewManual creates a paced manual sampler
func NewManual(clock quartz.Clock, interval time.Duration) *Manual {
	return &Manual{clock: clock, interval: interval}
}

// Set updates the distance every subsequent Sample call reads
func (m *Manual) Set(distance float64) {
	m.distance.Store(distance)
}

// Clear moves the simulated hand out of both zones
func (m *Manual) Clear() {
	m.distance.Store(outOfRange)
}

// Sample returns the currently simulated distance
func (m *Manual) Sample() float64 {
	if m.interval > 0 && m.clock != nil {
		timer := m.clock.NewTimer(m.interval)
		<-timer.C
	}
	if d, ok := m.distance.Load().(float64); ok {
		return d
	}
	return outOfRange
}
