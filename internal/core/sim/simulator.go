package sim

import (
	"fmt"

	"github.com/zeusync/armsim/internal/core/arm"
	"github.com/zeusync/armsim/internal/core/geometry"
	"github.com/zeusync/armsim/internal/core/observability/log"
)

// Config is everything needed to build a Simulator.
type Config struct {
	Geometry arm.Geometry
	Variant  arm.SolverVariant
	Motion   Motion
	Start    geometry.Point
	// WristDegrees is the initial absolute wrist orientation.
	WristDegrees float64
}

// Frame is the derived state handed to render and dashboard collaborators
// after each tick. It is a value; collaborators cannot write back through it.
type Frame struct {
	Tick      uint64
	State     EffectorState
	Angles    arm.JointAngles
	Wrist     float64
	Chain     arm.Chain
	Geometry  arm.Geometry
	Workspace arm.Workspace
	// Moved is set when the position changed this tick.
	Moved bool
	// Blocked is set when input asked for motion and none happened.
	Blocked bool
	// Flipped is set when a flip request was committed this tick.
	Flipped bool
}

// Simulator owns the effector state for one arm. It is not safe for
// concurrent use: a single tick loop drives it.
type Simulator struct {
	geometry arm.Geometry
	solver   *arm.Solver
	motion   Motion

	input  Input
	state  EffectorState
	angles arm.JointAngles
	tick   uint64

	logger log.Log
}

func New(cfg Config, logger log.Log) (*Simulator, error) {
	if err := cfg.Geometry.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Variant.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Motion.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Geometry.Workspace().IsReachable(cfg.Start) {
		return nil, fmt.Errorf("%v: %w", cfg.Start, ErrUnreachable)
	}
	if logger == nil {
		logger = log.NewNop()
	}

	s := &Simulator{
		geometry: cfg.Geometry,
		solver:   arm.NewSolver(cfg.Geometry, cfg.Variant),
		motion:   cfg.Motion,
		state:    EffectorState{Position: cfg.Start},
		logger:   logger.With(log.String("component", "sim")),
	}
	s.input.SetWrist(cfg.WristDegrees)
	s.angles = s.solver.Solve(s.state.Position, s.input.Wrist())

	s.logger.Info("Simulator created",
		log.String("solver", cfg.Variant.String()),
		log.String("policy", cfg.Motion.Policy.String()),
		log.Float64("max_radius", cfg.Geometry.Workspace().MaxRadius))

	return s, nil
}

// Apply feeds input transitions in order.
func (s *Simulator) Apply(events ...InputEvent) {
	for _, e := range events {
		s.input.Apply(e)
	}
}

// Input exposes the held-key state for collaborators that drive it directly.
func (s *Simulator) Input() *Input {
	return &s.input
}

// Tick runs one step: pending flip, move, inverse kinematics.
func (s *Simulator) Tick() Frame {
	s.tick++
	prev := s.state.Position
	w := s.geometry.Workspace()

	flipped := false
	if s.input.TakeFlip() {
		mirrored := geometry.Point{X: -s.state.Position.X, Y: s.state.Position.Y}
		if w.IsReachable(mirrored) {
			s.state.Position = mirrored
			flipped = true
		}
	}

	vx, vy := s.input.Velocity()
	velocity := geometry.Point{X: vx, Y: vy}
	before := s.state.Position
	s.state = Step(s.state, velocity, s.geometry, s.motion)
	s.angles = s.solver.Solve(s.state.Position, s.input.Wrist())

	blocked := velocity != (geometry.Point{}) && s.state.Position == before
	if blocked {
		s.logger.Debug("Move blocked at workspace boundary",
			log.Uint64("tick", s.tick),
			log.Float64("x", before.X),
			log.Float64("y", before.Y))
	}

	f := s.Frame()
	f.Moved = s.state.Position != prev
	f.Blocked = blocked
	f.Flipped = flipped
	return f
}

// Frame returns the current derived state without advancing.
func (s *Simulator) Frame() Frame {
	return Frame{
		Tick:      s.tick,
		State:     s.state,
		Angles:    s.angles,
		Wrist:     s.input.Wrist(),
		Chain:     arm.Forward(s.geometry, s.angles),
		Geometry:  s.geometry,
		Workspace: s.geometry.Workspace(),
	}
}

func (s *Simulator) State() EffectorState {
	return s.state
}

func (s *Simulator) Angles() arm.JointAngles {
	return s.angles
}

func (s *Simulator) Geometry() arm.Geometry {
	return s.geometry
}
