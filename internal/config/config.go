// Package config loads the simulator configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/armsim/internal/core/arm"
	"github.com/zeusync/armsim/internal/core/geometry"
	"github.com/zeusync/armsim/internal/core/observability/log"
	"github.com/zeusync/armsim/internal/core/sim"
)

// Config is the full simulator configuration.
type Config struct {
	Arm          ArmConfig    `yaml:"arm"`
	Solver       string       `yaml:"solver"`
	Motion       MotionConfig `yaml:"motion"`
	WristDegrees float64      `yaml:"wrist_degrees"`
	Loop         LoopConfig   `yaml:"loop"`
	Log          LogConfig    `yaml:"log"`
	Render       RenderConfig `yaml:"render"`
}

// ArmConfig holds link lengths in arm units. The defaults are the measured
// prototype, in centimetres scaled by 100.
type ArmConfig struct {
	Link1Length  float64 `yaml:"link1_length"`
	Link2Length  float64 `yaml:"link2_length"`
	WristLength  float64 `yaml:"wrist_length"`
	GroundOffset float64 `yaml:"ground_offset"`
	BaseLength   float64 `yaml:"base_length"`
}

type MotionConfig struct {
	Speed  float64     `yaml:"speed"`
	Policy string      `yaml:"policy"`
	Start  PointConfig `yaml:"start"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type LoopConfig struct {
	// TickInterval is the wall-clock period of one tick in interactive runs.
	TickInterval time.Duration `yaml:"tick_interval"`
	// HoldTimeout is how long a terminal key press counts as held without a
	// repeat. Terminals do not report key releases.
	HoldTimeout time.Duration `yaml:"hold_timeout"`
	// WristStep is the wrist change per bracket key press, in degrees.
	WristStep float64 `yaml:"wrist_step"`
}

type LogConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
	Output   string `yaml:"output"`
}

type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

const scale = 100.0

// Default returns the configuration of the reference arm.
func Default() *Config {
	return &Config{
		Arm: ArmConfig{
			Link1Length:  0.9525 * scale,
			Link2Length:  0.81838079 * scale,
			WristLength:  0.22609618 * scale,
			GroundOffset: 0.18016220 * scale,
			BaseLength:   0.8810244 * scale,
		},
		Solver: arm.LawOfCosines.String(),
		Motion: MotionConfig{
			Speed:  1,
			Policy: sim.Reject.String(),
			Start:  PointConfig{X: 100, Y: 100},
		},
		Loop: LoopConfig{
			TickInterval: 16 * time.Millisecond,
			HoldTimeout:  500 * time.Millisecond,
			WristStep:    5,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
			Output:   "stderr",
		},
		Render: RenderConfig{
			Width:  512,
			Height: 512,
		},
	}
}

// Load decodes YAML on top of Default. Unknown keys are an error; an empty
// document yields the defaults.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	g, err := c.Geometry()
	if err != nil {
		return fmt.Errorf("%w: arm: %w", ErrInvalidConfig, err)
	}
	if start := (geometry.Point{X: c.Motion.Start.X, Y: c.Motion.Start.Y}); !g.Workspace().IsReachable(start) {
		return fmt.Errorf("%w: motion.start %v: %w", ErrInvalidConfig, start, sim.ErrUnreachable)
	}
	if _, err := arm.ParseSolverVariant(c.Solver); err != nil {
		return fmt.Errorf("%w: solver: %w", ErrInvalidConfig, err)
	}
	if _, err := c.motion(); err != nil {
		return fmt.Errorf("%w: motion: %w", ErrInvalidConfig, err)
	}
	if c.Loop.TickInterval <= 0 {
		return fmt.Errorf("%w: loop.tick_interval must be positive", ErrInvalidConfig)
	}
	if c.Loop.HoldTimeout <= 0 {
		return fmt.Errorf("%w: loop.hold_timeout must be positive", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: log.encoding %q", ErrInvalidConfig, c.Log.Encoding)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalidConfig, c.Render.Width, c.Render.Height)
	}
	return nil
}

func (c *Config) Geometry() (arm.Geometry, error) {
	a := c.Arm
	return arm.NewGeometry(a.Link1Length, a.Link2Length, a.WristLength, a.GroundOffset, a.BaseLength)
}

func (c *Config) motion() (sim.Motion, error) {
	policy, err := sim.ParsePolicy(c.Motion.Policy)
	if err != nil {
		return sim.Motion{}, err
	}
	m := sim.Motion{Speed: c.Motion.Speed, Policy: policy}
	return m, m.Validate()
}

// SimConfig converts the loaded file into simulator construction parameters.
func (c *Config) SimConfig() (sim.Config, error) {
	g, err := c.Geometry()
	if err != nil {
		return sim.Config{}, err
	}
	variant, err := arm.ParseSolverVariant(c.Solver)
	if err != nil {
		return sim.Config{}, err
	}
	m, err := c.motion()
	if err != nil {
		return sim.Config{}, err
	}
	return sim.Config{
		Geometry:     g,
		Variant:      variant,
		Motion:       m,
		Start:        geometry.Point{X: c.Motion.Start.X, Y: c.Motion.Start.Y},
		WristDegrees: c.WristDegrees,
	}, nil
}

// LogOptions maps the log section onto logger options.
func (c *Config) LogOptions() log.Options {
	level, _ := log.ParseLevel(c.Log.Level)
	opts := log.Options{Level: level, Encoding: c.Log.Encoding}
	if c.Log.Output != "" {
		opts.OutputPaths = []string{c.Log.Output}
	}
	return opts
}
