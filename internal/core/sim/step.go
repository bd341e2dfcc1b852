package sim

import (
	"fmt"
	"math"
	"strings"

	"github.com/zeusync/armsim/internal/core/arm"
	"github.com/zeusync/armsim/internal/core/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// EffectorState is owned by the tick loop and replaced once per tick.
type EffectorState struct {
	Position geometry.Point
	// Velocity is the input direction applied on the last tick, each axis in
	// {-1, 0, 1}.
	Velocity geometry.Point
}

// Policy decides what happens to a move that leaves the workspace.
type Policy uint8

const (
	// Reject drops the whole move. A blocked diagonal does not slide along
	// the boundary.
	Reject Policy = iota
	// PerAxis moves x first, checked against the old y, then y, checked
	// against the x just committed. The result depends on that order: a
	// diagonal into the boundary may keep its x component and lose y, never
	// the other way round.
	PerAxis
	// Clamp commits the nearest reachable point to the desired one.
	Clamp
)

func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case PerAxis:
		return "per_axis"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return Reject, nil
	case "per_axis", "per-axis", "peraxis":
		return PerAxis, nil
	case "clamp":
		return Clamp, nil
	default:
		return Reject, fmt.Errorf("%q: %w", s, ErrUnknownPolicy)
	}
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Motion scales and gates input each tick.
type Motion struct {
	// Speed is the distance moved per tick per unit of input.
	Speed  float64
	Policy Policy
}

func (m Motion) Validate() error {
	if !(m.Speed > 0) || math.IsInf(m.Speed, 0) {
		return fmt.Errorf("speed %v: %w", m.Speed, ErrInvalidSpeed)
	}
	if m.Policy > Clamp {
		return fmt.Errorf("%v: %w", m.Policy, ErrUnknownPolicy)
	}
	return nil
}

// Step advances the effector by one tick of input and returns the new state.
// The position only ever moves to a reachable point; otherwise it is kept.
func Step(state EffectorState, input geometry.Point, g arm.Geometry, m Motion) EffectorState {
	w := g.Workspace()
	next := EffectorState{Position: state.Position, Velocity: input}
	delta := r2.Scale(m.Speed, input)

	switch m.Policy {
	case PerAxis:
		p := state.Position
		if x := (geometry.Point{X: p.X + delta.X, Y: p.Y}); w.IsReachable(x) {
			p = x
		}
		if y := (geometry.Point{X: p.X, Y: p.Y + delta.Y}); w.IsReachable(y) {
			p = y
		}
		next.Position = p
	case Clamp:
		next.Position = w.Clamp(r2.Add(state.Position, delta))
	default:
		if desired := r2.Add(state.Position, delta); w.IsReachable(desired) {
			next.Position = desired
		}
	}
	return next
}
