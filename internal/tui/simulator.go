// Package tui runs the game without the sensor rig: the keyboard stands in
// for the ultrasonic sensor and the painted terminal stream renders in a
// scrollable pane.
package tui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/tapjackhq/tapjack/internal/display"
	"github.com/tapjackhq/tapjack/internal/gesture"
	"github.com/tapjackhq/tapjack/internal/sensor"
)

// handInterval paces the simulated sensor so a held key commits a gesture
// quickly without spinning the classifier.
const handInterval = time.Millisecond

// stream is a transport the engine goroutine writes while the model reads
type stream struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (s *stream) Send(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.WriteString(text)
	return nil
}

func (s *stream) SendChar(c byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.WriteByte(c)
	return nil
}

func (s *stream) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

// Simulator is the Bubble Tea model for keyboard play. Keys move the
// simulated hand: h holds it in the hit zone, s in the stay zone, and
// space withdraws it.
type Simulator struct {
	hand   *sensor.Manual
	stream *stream
	cfg    gesture.Config
	logger *log.Logger

	terminal viewport.Model

	// distance is the currently simulated hand position, 0 when withdrawn.
	distance float64

	width    int
	height   int
	quitting bool
}

type tickMsg time.Time

// NewSimulator creates the model. Transport() and Sensor() wire it to the
// engine, which runs on its own goroutine.
func NewSimulator(cfg gesture.Config, logger *log.Logger) *Simulator {
	vp := viewport.New(80, 24)
	vp.SetContent("")

	return &Simulator{
		hand:     sensor.NewManual(quartz.NewReal(), handInterval),
		stream:   &stream{},
		cfg:      cfg,
		logger:   logger.WithPrefix("sim"),
		terminal: vp,
	}
}

// Transport returns the terminal transport the engine should paint to
func (m *Simulator) Transport() display.Transport {
	return m.stream
}

// Sensor returns the simulated hand the engine's classifier should sample
func (m *Simulator) Sensor() *sensor.Manual {
	return m.hand
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the refresh loop
func (m *Simulator) Init() tea.Cmd {
	return tick()
}

// Update handles messages in the simulator
func (m *Simulator) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.terminal.Width = msg.Width - 4
		m.terminal.Height = msg.Height - 6

	case tickMsg:
		m.terminal.SetContent(m.stream.String())
		m.terminal.GotoBottom()
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "h":
			m.distance = m.cfg.HitNear + m.cfg.Width/2
			m.hand.Set(m.distance)
			m.logger.Debug("hand moved", "distance", m.distance, "zone", "hit")
		case "s":
			m.distance = m.cfg.StayNear + m.cfg.Width/2
			m.hand.Set(m.distance)
			m.logger.Debug("hand moved", "distance", m.distance, "zone", "stay")
		case " ", "c":
			m.distance = 0
			m.hand.Clear()
			m.logger.Debug("hand withdrawn")
		case "up", "k":
			m.terminal.ScrollUp(1)
		case "down", "j":
			m.terminal.ScrollDown(1)
		case "pgup", "b":
			m.terminal.HalfPageUp()
		case "pgdown", "f":
			m.terminal.HalfPageDown()
		}
	}

	var cmd tea.Cmd
	m.terminal, cmd = m.terminal.Update(msg)
	return m, cmd
}

// View renders the simulator
func (m *Simulator) View() string {
	if m.quitting {
		return ""
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		HeaderStyle.Render("TAPJACK SIMULATOR"),
		TerminalPaneStyle.Render(m.terminal.View()),
		m.statusLine(),
		HelpStyle.Render("h hit zone • s stay zone • space withdraw • q quit"),
	)
}

// statusLine reports where the simulated hand sits relative to the zones
func (m *Simulator) statusLine() string {
	switch {
	case m.distance == 0:
		return IdleStyle.Render("hand withdrawn")
	case m.distance < m.cfg.HitNear+m.cfg.Width:
		return HitStyle.Render(fmt.Sprintf("hand at %.1fcm (HIT zone)", m.distance))
	default:
		return StayStyle.Render(fmt.Sprintf("hand at %.1fcm (STAY zone)", m.distance))
	}
}
