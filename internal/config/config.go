// Package config loads the controller configuration from an HCL file with
// environment overrides. Every value defaults to the reference rig's
// hardware constants, so an empty or missing file yields a playable setup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

// Environment variable overrides
const (
	// EnvConfig points at the HCL config file
	EnvConfig = "TAPJACK_CONFIG"

	// EnvSeed forces the shuffle seed for deterministic play
	EnvSeed = "TAPJACK_SEED"

	// EnvListen overrides the websocket terminal listen address
	EnvListen = "TAPJACK_LISTEN"
)

// Config represents the complete controller configuration
type Config struct {
	Gesture   GestureSettings   `hcl:"gesture,block"`
	Display   DisplaySettings   `hcl:"display,block"`
	Transport TransportSettings `hcl:"transport,block"`
	Game      GameSettings      `hcl:"game,block"`
}

// GestureSettings tunes the distance classifier
type GestureSettings struct {
	// HitNear and StayNear are the near edges of the two zones in cm.
	HitNear  float64 `hcl:"hit_near,optional"`
	StayNear float64 `hcl:"stay_near,optional"`
	// Width is the depth of each zone in cm.
	Width float64 `hcl:"width,optional"`
	// Threshold is the consecutive sample count that commits a gesture.
	Threshold int `hcl:"threshold,optional"`
}

// DisplaySettings sizes and paces the terminal
type DisplaySettings struct {
	Width  int `hcl:"width,optional"`
	Height int `hcl:"height,optional"`

	// Delays in milliseconds.
	InputDelayMs   int `hcl:"input_delay_ms,optional"`
	RefreshDelayMs int `hcl:"refresh_delay_ms,optional"`
	ReadDelayMs    int `hcl:"read_delay_ms,optional"`
	ResultsDelayMs int `hcl:"results_delay_ms,optional"`
}

// TransportSettings selects how frames reach the terminal
type TransportSettings struct {
	// Listen is the websocket terminal address. Empty means local stdout.
	Listen string `hcl:"listen,optional"`
}

// GameSettings tunes the round driver
type GameSettings struct {
	// Seed forces the shuffle seed. Zero seeds from the sensor.
	Seed int64 `hcl:"seed,optional"`

	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// Default returns the reference rig's configuration
func Default() *Config {
	return &Config{
		Gesture: GestureSettings{
			HitNear:   8.0,
			StayNear:  35.0,
			Width:     22.0,
			Threshold: 200,
		},
		Display: DisplaySettings{
			Width:          165,
			Height:         28,
			InputDelayMs:   200,
			RefreshDelayMs: 2000,
			ReadDelayMs:    4000,
			ResultsDelayMs: 10000,
		},
		Game: GameSettings{
			LogLevel: "info",
			LogFile:  "tapjack.log",
		},
	}
}

// Load reads the HCL config file, falling back to defaults when the file
// does not exist, then applies environment overrides. A .env file in the
// working directory is honoured first.
func Load(filename string) (*Config, error) {
	_ = godotenv.Load()

	if filename == "" {
		filename = os.Getenv(EnvConfig)
	}

	config := Default()
	if filename != "" {
		if _, err := os.Stat(filename); err == nil {
			parser := hclparse.NewParser()
			file, diags := parser.ParseHCLFile(filename)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
			}

			var parsed Config
			if diags = gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
			}
			config = &parsed
			config.applyDefaults()
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyDefaults fills values the file left unset
func (c *Config) applyDefaults() {
	def := Default()

	if c.Gesture.HitNear == 0 {
		c.Gesture.HitNear = def.Gesture.HitNear
	}
	if c.Gesture.StayNear == 0 {
		c.Gesture.StayNear = def.Gesture.StayNear
	}
	if c.Gesture.Width == 0 {
		c.Gesture.Width = def.Gesture.Width
	}
	if c.Gesture.Threshold == 0 {
		c.Gesture.Threshold = def.Gesture.Threshold
	}

	if c.Display.Width == 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.Height == 0 {
		c.Display.Height = def.Display.Height
	}
	if c.Display.InputDelayMs == 0 {
		c.Display.InputDelayMs = def.Display.InputDelayMs
	}
	if c.Display.RefreshDelayMs == 0 {
		c.Display.RefreshDelayMs = def.Display.RefreshDelayMs
	}
	if c.Display.ReadDelayMs == 0 {
		c.Display.ReadDelayMs = def.Display.ReadDelayMs
	}
	if c.Display.ResultsDelayMs == 0 {
		c.Display.ResultsDelayMs = def.Display.ResultsDelayMs
	}

	if c.Game.LogLevel == "" {
		c.Game.LogLevel = def.Game.LogLevel
	}
	if c.Game.LogFile == "" {
		c.Game.LogFile = def.Game.LogFile
	}
}

// applyEnv overrides file values from the environment
func (c *Config) applyEnv() error {
	if seedStr := os.Getenv(EnvSeed); seedStr != "" {
		seed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		c.Game.Seed = seed
	}
	if listen := os.Getenv(EnvListen); listen != "" {
		c.Transport.Listen = listen
	}
	return nil
}

// Validate checks that the configuration describes a usable rig
func (c *Config) Validate() error {
	g := c.Gesture
	if g.HitNear <= 0 || g.StayNear <= 0 {
		return fmt.Errorf("gesture zones must start at a positive distance")
	}
	if g.Width <= 0 {
		return fmt.Errorf("gesture zone width must be positive")
	}
	if g.Threshold <= 0 {
		return fmt.Errorf("gesture threshold must be positive")
	}
	if g.HitNear+g.Width > g.StayNear {
		return fmt.Errorf("gesture zones overlap: hit ends at %.1fcm, stay starts at %.1fcm",
			g.HitNear+g.Width, g.StayNear)
	}

	if c.Display.Width < 60 {
		return fmt.Errorf("display width %d is too narrow for the card art", c.Display.Width)
	}
	if c.Display.Height < 24 {
		return fmt.Errorf("display height %d is too short for a full frame", c.Display.Height)
	}

	switch c.Game.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Game.LogLevel)
	}
	return nil
}

// InputDelay returns the input settle delay as a duration
func (c *Config) InputDelay() time.Duration {
	return time.Duration(c.Display.InputDelayMs) * time.Millisecond
}

// RefreshDelay returns the frame refresh delay as a duration
func (c *Config) RefreshDelay() time.Duration {
	return time.Duration(c.Display.RefreshDelayMs) * time.Millisecond
}

// ReadDelay returns the read hold delay as a duration
func (c *Config) ReadDelay() time.Duration {
	return time.Duration(c.Display.ReadDelayMs) * time.Millisecond
}

// ResultsDelay returns the results hold delay as a duration
func (c *Config) ResultsDelay() time.Duration {
	return time.Duration(c.Display.ResultsDelayMs) * time.Millisecond
}
