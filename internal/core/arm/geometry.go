// Package arm models a planar arm with two rotational links and an optional
// wrist: its reachable workspace, inverse kinematics, and forward kinematics.
package arm

import (
	"fmt"
	"math"
)

// Geometry is the fixed shape of the arm. Build it with NewGeometry; the zero
// value is not a valid arm.
type Geometry struct {
	Link1Length float64
	Link2Length float64
	// WristLength is the gripper bar length; 0 means no wrist link.
	WristLength float64
	// GroundOffset is the clearance between the base joint and the ground.
	// The effector may not go below y = -GroundOffset. 0 puts the ground on
	// the base joint.
	GroundOffset float64
	// BaseLength is the drawn width of the mount. It has no kinematic effect.
	BaseLength float64
}

func NewGeometry(link1, link2, wrist, groundOffset, baseLength float64) (Geometry, error) {
	g := Geometry{
		Link1Length:  link1,
		Link2Length:  link2,
		WristLength:  wrist,
		GroundOffset: groundOffset,
		BaseLength:   baseLength,
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}
	return g, nil
}

func (g Geometry) Validate() error {
	if !positive(g.Link1Length) {
		return fmt.Errorf("link1 %v: %w", g.Link1Length, ErrInvalidLength)
	}
	if !positive(g.Link2Length) {
		return fmt.Errorf("link2 %v: %w", g.Link2Length, ErrInvalidLength)
	}
	if !nonNegative(g.WristLength) {
		return fmt.Errorf("wrist %v: %w", g.WristLength, ErrInvalidWrist)
	}
	if !nonNegative(g.GroundOffset) {
		return fmt.Errorf("ground offset %v: %w", g.GroundOffset, ErrInvalidGround)
	}
	if !nonNegative(g.BaseLength) {
		return fmt.Errorf("base %v: %w", g.BaseLength, ErrInvalidBase)
	}
	return nil
}

// HasWrist reports whether a third link is mounted.
func (g Geometry) HasWrist() bool {
	return g.WristLength > 0
}

// Workspace returns the reachable region of this arm.
func (g Geometry) Workspace() Workspace {
	return Workspace{
		MaxRadius: g.Link1Length + g.Link2Length,
		MinRadius: math.Abs(g.Link1Length - g.Link2Length),
		GroundY:   -g.GroundOffset,
	}
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
