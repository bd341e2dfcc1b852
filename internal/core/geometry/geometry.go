// Package geometry holds the planar primitives the arm model is built from.
// Points are gonum r2 vectors in arm-centred coordinates: the base joint is the
// origin, +x to the right, +y up.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in the arm plane.
type Point = r2.Vec

// Origin is the base joint.
var Origin = Point{}

// ProjectPoint returns origin + length·(cos angle, sin angle).
func ProjectPoint(origin Point, angle, length float64) Point {
	return r2.Add(origin, r2.Scale(length, Point{X: math.Cos(angle), Y: math.Sin(angle)}))
}

// LawOfCosinesAngle returns the angle opposite the side `opposite` in a triangle
// whose other two sides are adjA and adjB.
//
// The cosine is clamped to [-1, 1] before acos, so sides that cannot form a
// triangle (target out of reach, or rounding on the boundary) yield 0 or π
// instead of NaN. A zero-length adjacent side has no defined angle; π/2 is
// returned, which is the limit for a target sitting on the y axis.
func LawOfCosinesAngle(opposite, adjA, adjB float64) float64 {
	den := 2 * adjA * adjB
	if den == 0 {
		return math.Pi / 2
	}
	return math.Acos(Clamp((adjA*adjA+adjB*adjB-opposite*opposite)/den, -1, 1))
}

// Clamp limits v to [lo, hi]. NaN maps to lo.
func Clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// Radius is the distance of p from the base joint.
func Radius(p Point) float64 {
	return r2.Norm(p)
}

func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Finite reports whether both coordinates are real numbers.
func Finite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
