package tui

import (
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tapjackhq/tapjack/internal/gesture"
)

func testSimulator() *Simulator {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return NewSimulator(gesture.DefaultConfig(), logger)
}

func pressKey(m *Simulator, key string) *Simulator {
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(*Simulator)
}

func TestKeysMoveTheSimulatedHand(t *testing.T) {
	m := testSimulator()

	m = pressKey(m, "h")
	assert.InDelta(t, 19.0, m.Sensor().Sample(), 0.001)

	m = pressKey(m, "s")
	assert.InDelta(t, 46.0, m.Sensor().Sample(), 0.001)

	m = pressKey(m, " ")
	assert.Greater(t, m.Sensor().Sample(), 100.0)
}

func TestStatusLineTracksZone(t *testing.T) {
	m := testSimulator()
	assert.Contains(t, m.statusLine(), "withdrawn")

	m = pressKey(m, "h")
	assert.Contains(t, m.statusLine(), "HIT zone")

	m = pressKey(m, "s")
	assert.Contains(t, m.statusLine(), "STAY zone")
}

func TestTerminalPaneShowsEngineOutput(t *testing.T) {
	m := testSimulator()

	require.NoError(t, m.Transport().Send("HIT or STAY?"))
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(*Simulator)
	require.NotNil(t, cmd, "tick must reschedule itself")

	assert.Contains(t, m.terminal.View(), "HIT or STAY?")
}

func TestQuitKeyStopsTheModel(t *testing.T) {
	m := testSimulator()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(*Simulator)

	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
	require.NotNil(t, cmd)
}
