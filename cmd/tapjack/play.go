package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	rand "math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/tapjackhq/tapjack/internal/config"
	"github.com/tapjackhq/tapjack/internal/display"
	"github.com/tapjackhq/tapjack/internal/game"
	"github.com/tapjackhq/tapjack/internal/gesture"
	"github.com/tapjackhq/tapjack/internal/randutil"
	"github.com/tapjackhq/tapjack/internal/sensor"
	"github.com/tapjackhq/tapjack/internal/tui"
)

// PlayCmd runs the table. Without a replay trace the keyboard simulator
// stands in for the sensor rig.
type PlayCmd struct {
	Config string `kong:"short='c',help='Path to HCL config file'"`
	Sim    bool   `kong:"help='Run with the keyboard simulator (the default when no replay trace is given)'"`
	Replay string `kong:"help='Drive decisions from a recorded distance trace instead of the keyboard'"`
	Rounds int    `kong:"default='1',help='Rounds to play in replay mode'"`
	Listen string `kong:"help='Serve the terminal over websocket at this address (replay mode)'"`
	Seed   *int64 `kong:"help='Deterministic shuffle seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Listen != "" {
		cfg.Transport.Listen = c.Listen
	}
	if c.Seed != nil {
		cfg.Game.Seed = *c.Seed
	}
	if c.Debug {
		cfg.Game.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = sensor.ClockSeed{}.Seed()
	}
	logger.Info("starting", "version", version, "seed", seed)
	rng := randutil.New(seed)

	gcfg := gesture.Config{
		HitNear:   cfg.Gesture.HitNear,
		StayNear:  cfg.Gesture.StayNear,
		Width:     cfg.Gesture.Width,
		Threshold: cfg.Gesture.Threshold,
	}

	if c.Replay != "" && !c.Sim {
		return c.runReplay(cfg, gcfg, rng, logger)
	}
	return c.runSimulator(cfg, gcfg, rng, logger)
}

// runSimulator plays through the Bubble Tea keyboard rig
func (c *PlayCmd) runSimulator(cfg *config.Config, gcfg gesture.Config, rng *rand.Rand, logger *log.Logger) error {
	if cfg.Transport.Listen != "" {
		logger.Warn("websocket terminal is ignored in simulator mode")
	}

	sim := tui.NewSimulator(gcfg, logger)
	input := gesture.NewClassifier(sim.Sensor(), gcfg, logger)
	screen := display.NewScreen(sim.Transport(), geometry(cfg), delays(cfg), nil, logger)
	engine := game.NewEngine(rng, input, screen, logger)

	go engine.Run()

	p := tea.NewProgram(sim, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("simulator failed: %w", err)
	}
	return nil
}

// runReplay plays rounds against a recorded distance trace, painting the
// terminal locally or over websocket
func (c *PlayCmd) runReplay(cfg *config.Config, gcfg gesture.Config, rng *rand.Rand, logger *log.Logger) error {
	f, err := os.Open(c.Replay)
	if err != nil {
		return fmt.Errorf("failed to open replay trace: %w", err)
	}
	defer f.Close()

	trace, err := sensor.ReadReplay(f)
	if err != nil {
		return fmt.Errorf("failed to parse replay trace: %w", err)
	}
	input := gesture.NewClassifier(trace, gcfg, logger)

	fmt.Print(titleStyle.Render(" TAPJACK "))
	fmt.Println()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	var transport display.Transport
	if cfg.Transport.Listen != "" {
		ws := display.NewWSTransport(cfg.Transport.Listen, logger)
		g.Go(func() error {
			return ws.Listen(ctx)
		})
		transport = ws
	} else {
		transport = display.NewLocalTransport()
		defer display.RestoreLocal()
	}

	screen := display.NewScreen(transport, geometry(cfg), delays(cfg), nil, logger)
	engine := game.NewEngine(rng, input, screen, logger)

	g.Go(func() error {
		defer cancel()
		screen.Blank()
		screen.Intro()
		for round := 1; round <= c.Rounds; round++ {
			engine.PlayRound(round)
		}
		return nil
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func geometry(cfg *config.Config) display.Geometry {
	return display.Geometry{
		Width:  cfg.Display.Width,
		Height: cfg.Display.Height,
	}
}

func delays(cfg *config.Config) display.Delays {
	return display.Delays{
		Input:   cfg.InputDelay(),
		Refresh: cfg.RefreshDelay(),
		Read:    cfg.ReadDelay(),
		Results: cfg.ResultsDelay(),
	}
}

// setupLogger logs to the configured file: stdout belongs to the terminal
// frames in replay mode and to Bubble Tea in simulator mode
func setupLogger(cfg *config.Config) (*log.Logger, func(), error) {
	f, err := os.OpenFile(cfg.Game.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           logLevel(cfg.Game.LogLevel),
	})
	return logger, func() { f.Close() }, nil
}

func logLevel(s string) log.Level {
	switch s {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
