package arm

import (
	"math"

	"github.com/zeusync/armsim/internal/core/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// boundaryTolerance is relative to MaxRadius². It keeps points that sit on
// the reach circle admissible when their coordinates carry rounding.
const boundaryTolerance = 1e-12

// Workspace is the disk of radius MaxRadius around the base joint cut by the
// ground line y = GroundY. It is derived from Geometry and never stored.
type Workspace struct {
	MaxRadius float64
	// MinRadius is |link1 - link2|. Points closer than this are not rejected;
	// the value is kept for drawing.
	MinRadius float64
	GroundY   float64
}

// IsReachable checks p against the ground line, then the vertical bound at
// p.X, then the horizontal bound at p.Y. All three must hold.
func (w Workspace) IsReachable(p geometry.Point) bool {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	if p.Y < w.GroundY {
		return false
	}
	rr := w.MaxRadius * w.MaxRadius
	tol := boundaryTolerance * rr
	// p.Y <= sqrt(R² - p.X²)
	if !underRoot(p.Y, rr-p.X*p.X, tol) {
		return false
	}
	// |p.X| <= sqrt(R² - p.Y²). Bounding |x| rather than x keeps the
	// workspace mirror symmetric, so a flipped pose stays reachable.
	if !underRoot(math.Abs(p.X), rr-p.Y*p.Y, tol) {
		return false
	}
	return true
}

// underRoot reports v <= sqrt(radicand). A negative radicand has no real root
// and fails. The comparison is done on squares so the boundary is not
// sensitive to sqrt's slope near zero.
func underRoot(v, radicand, tol float64) bool {
	if radicand < -tol {
		return false
	}
	if v <= 0 {
		return true
	}
	return v*v <= radicand+tol
}

// Clamp returns the nearest admissible point along the radius from the base
// joint: outside the circle p is pulled onto it, and below the ground line
// y is raised to it.
func (w Workspace) Clamp(p geometry.Point) geometry.Point {
	if !geometry.Finite(p) {
		return geometry.Origin
	}

	if r := r2.Norm(p); r > w.MaxRadius {
		p = r2.Scale(w.MaxRadius/r, p)
	}

	// Raising y shortens the radius, so the point stays inside the circle.
	if p.Y < w.GroundY {
		p.Y = w.GroundY
	}
	return p
}
