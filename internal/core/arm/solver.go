package arm

import (
	"fmt"
	"math"
	"strings"

	"github.com/zeusync/armsim/internal/core/geometry"
)

// SolverVariant selects the inverse kinematics derivation. Both place the
// effector at the same point; the raw angles may differ.
type SolverVariant uint8

const (
	// LawOfCosines builds theta1 from the triangle base-elbow-effector and
	// always reports the same elbow bend.
	LawOfCosines SolverVariant = iota
	// Atan2 picks the elbow branch from the sign of the target's x.
	Atan2
)

func (v SolverVariant) String() string {
	switch v {
	case LawOfCosines:
		return "law_of_cosines"
	case Atan2:
		return "atan2"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

func ParseSolverVariant(s string) (SolverVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "law_of_cosines", "lawofcosines", "law-of-cosines":
		return LawOfCosines, nil
	case "atan2":
		return Atan2, nil
	default:
		return LawOfCosines, fmt.Errorf("%q: %w", s, ErrUnknownVariant)
	}
}

// Validate rejects values outside the declared variants.
func (v SolverVariant) Validate() error {
	switch v {
	case LawOfCosines, Atan2:
		return nil
	default:
		return fmt.Errorf("%v: %w", v, ErrUnknownVariant)
	}
}

func (v SolverVariant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *SolverVariant) UnmarshalText(text []byte) error {
	parsed, err := ParseSolverVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// JointAngles are in radians. Theta1 is the absolute orientation of link 1,
// Theta2 is link 2 relative to link 1, Theta3 is the wrist relative to link 2.
type JointAngles struct {
	Theta1 float64
	Theta2 float64
	Theta3 float64
}

// Link2Orientation is the absolute angle of link 2.
func (a JointAngles) Link2Orientation() float64 {
	return a.Theta1 + a.Theta2
}

// WristOrientation is the absolute angle of the wrist.
func (a JointAngles) WristOrientation() float64 {
	return a.Theta1 + a.Theta2 + a.Theta3
}

// Degrees returns the three angles converted for display.
func (a JointAngles) Degrees() (float64, float64, float64) {
	return geometry.Degrees(a.Theta1), geometry.Degrees(a.Theta2), geometry.Degrees(a.Theta3)
}

// Solver computes joint angles for an effector position. It never returns
// NaN: unreachable targets are answered with the clamped, nearest-bend
// solution, so callers gate on Workspace.IsReachable when exactness matters.
type Solver struct {
	geometry Geometry
	variant  SolverVariant
}

// NewSolver does not check its arguments; callers validate the geometry and
// the variant first, as sim.New does.
func NewSolver(g Geometry, variant SolverVariant) *Solver {
	return &Solver{geometry: g, variant: variant}
}

func (s *Solver) Variant() SolverVariant {
	return s.variant
}

// Solve returns the joint angles that put the effector at p with the wrist
// held at wristDegrees in the plane's absolute frame.
func (s *Solver) Solve(p geometry.Point, wristDegrees float64) JointAngles {
	var angles JointAngles
	switch s.variant {
	case Atan2:
		angles.Theta1, angles.Theta2 = s.solveAtan2(p)
	default:
		angles.Theta1, angles.Theta2 = s.solveLawOfCosines(p)
	}
	angles.Theta3 = WristAngle(angles.Theta1, angles.Theta2, wristDegrees)
	return angles
}

// WristAngle keeps the wrist at an absolute orientation of wristDegrees
// whatever the first two joints are doing.
func WristAngle(theta1, theta2, wristDegrees float64) float64 {
	return -theta2 - theta1 + geometry.Radians(wristDegrees)
}

func (s *Solver) solveAtan2(p geometry.Point) (theta1, theta2 float64) {
	a1, a2 := s.geometry.Link1Length, s.geometry.Link2Length
	r := geometry.Radius(p)

	bend := math.Acos(geometry.Clamp((r*r-a1*a1-a2*a2)/(2*a1*a2), -1, 1))
	if p.X < 0 {
		bend = -bend
	}

	theta1 = math.Atan2(p.Y, p.X) + math.Atan2(a2*math.Sin(bend), a1+a2*math.Cos(bend))
	// With theta1 measured on the + side of the bend, link 2 turns back by it.
	theta2 = -bend
	return theta1, theta2
}

func (s *Solver) solveLawOfCosines(p geometry.Point) (theta1, theta2 float64) {
	a1, a2 := s.geometry.Link1Length, s.geometry.Link2Length
	r := geometry.Radius(p)

	alpha := geometry.LawOfCosinesAngle(p.Y, r, p.X)
	beta := geometry.LawOfCosinesAngle(a2, a1, r)
	if p.Y >= 0 {
		theta1 = alpha + beta
	} else {
		theta1 = -alpha + beta
	}

	gamma := geometry.LawOfCosinesAngle(r, a1, a2)
	theta2 = gamma - math.Pi
	return theta1, theta2
}
