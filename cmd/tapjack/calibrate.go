package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/tapjackhq/tapjack/internal/config"
	"github.com/tapjackhq/tapjack/internal/game"
	"github.com/tapjackhq/tapjack/internal/gesture"
	"github.com/tapjackhq/tapjack/internal/sensor"
)

// CalibrateCmd classifies a recorded distance trace against the configured
// zones and reports whether any gesture would have committed. Point it at a
// capture from the rig to tune zone edges and the debounce threshold.
type CalibrateCmd struct {
	Trace  string `kong:"arg,optional,help='Distance trace file, one centimetre reading per line (defaults to stdin)'"`
	Config string `kong:"short='c',help='Path to HCL config file'"`
}

func (c *CalibrateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if c.Trace != "" {
		f, err := os.Open(c.Trace)
		if err != nil {
			return fmt.Errorf("failed to open trace: %w", err)
		}
		defer f.Close()
		in = f
	}

	trace, err := sensor.ReadReplay(in)
	if err != nil {
		return fmt.Errorf("failed to parse trace: %w", err)
	}

	gcfg := gesture.Config{
		HitNear:   cfg.Gesture.HitNear,
		StayNear:  cfg.Gesture.StayNear,
		Width:     cfg.Gesture.Width,
		Threshold: cfg.Gesture.Threshold,
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
	classifier := gesture.NewClassifier(trace, gcfg, logger)

	fmt.Printf("hit zone %.1f-%.1fcm, stay zone %.1f-%.1fcm, threshold %d\n\n",
		gcfg.HitNear, gcfg.HitNear+gcfg.Width,
		gcfg.StayNear, gcfg.StayNear+gcfg.Width,
		gcfg.Threshold)

	var (
		counts  = map[game.Action]int{}
		run     int
		runAct  game.Action
		longest = map[game.Action]int{}
	)
	total := trace.Remaining()
	for i := 0; i < total; i++ {
		d := trace.Sample()
		act := classifier.Classify(d)
		counts[act]++

		if act == runAct {
			run++
		} else {
			runAct, run = act, 1
		}
		if run > longest[act] {
			longest[act] = run
		}

		fmt.Printf("%7.1fcm  %s\n", d, act)
	}

	fmt.Println()
	for _, act := range []game.Action{game.Hit, game.Stay, game.NoAction} {
		committed := ""
		if longest[act] > gcfg.Threshold {
			committed = "  (would commit)"
		}
		fmt.Printf("%-10s %5d samples, longest run %d%s\n", act, counts[act], longest[act], committed)
	}
	return nil
}
