package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jbeda/geom"

	"github.com/zeusync/armsim/internal/core/arm"
	"github.com/zeusync/armsim/internal/core/geometry"
	"github.com/zeusync/armsim/internal/core/sim"
)

const (
	colorAxis    = "#bbbbbb"
	colorReach   = "#888888"
	colorGround  = "#8b5a2b"
	colorBase    = "gray"
	colorLink1   = "blue"
	colorLink2   = "green"
	colorGripper = "red"
)

// svgWriter is a small SVG serializer. The first write error sticks and
// every later call is a no-op.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, a ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func attrs(kv []string) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %s='%s'", kv[i], kv[i+1])
	}
	return b.String()
}

func (s *svgWriter) start(width, height int, viewBox geom.Rect) {
	s.printf(`<?xml version="1.0"?>
<svg version="1.1" width="%d" height="%d"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg">
`, width, height, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height())
}

func (s *svgWriter) end() {
	s.printf("</svg>\n")
}

func (s *svgWriter) group(kv ...string) {
	s.printf("<g%s>\n", attrs(kv))
}

func (s *svgWriter) endGroup() {
	s.printf("</g>\n")
}

func (s *svgWriter) line(p1, p2 geom.Coord, kv ...string) {
	s.printf("<line x1='%f' y1='%f' x2='%f' y2='%f'%s/>\n", p1.X, p1.Y, p2.X, p2.Y, attrs(kv))
}

func (s *svgWriter) circle(c geom.Coord, r float64, kv ...string) {
	s.printf("<circle cx='%f' cy='%f' r='%f'%s/>\n", c.X, c.Y, r, attrs(kv))
}

func (s *svgWriter) rect(r geom.Rect, kv ...string) {
	s.printf("<rect x='%f' y='%f' width='%f' height='%f'%s/>\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), attrs(kv))
}

func coord(p geometry.Point) geom.Coord {
	return geom.Coord{X: p.X, Y: p.Y}
}

// SVG renders frames as standalone SVG documents.
type SVG struct {
	Width  int
	Height int
}

func NewSVG(width, height int) *SVG {
	return &SVG{Width: width, Height: height}
}

// Bounds is the arm-space region drawn for g: the reach disk plus a margin,
// extended down to the ground line and across the base bar.
func Bounds(g arm.Geometry) geom.Rect {
	ws := g.Workspace()
	margin := 0.05 * ws.MaxRadius
	r := ws.MaxRadius + margin
	bounds := geom.Rect{
		Min: geom.Coord{X: -r, Y: -r},
		Max: geom.Coord{X: r, Y: r},
	}
	bounds.ExpandToContainCoord(geom.Coord{X: -g.BaseLength/2 - margin, Y: ws.GroundY - margin})
	bounds.ExpandToContainCoord(geom.Coord{X: g.BaseLength/2 + margin, Y: ws.GroundY - margin})
	return bounds
}

// Write draws f to w. Arm space has y up, so the drawing is placed inside a
// group that flips y; the view box is flipped to match.
func (r *SVG) Write(w io.Writer, f sim.Frame) error {
	g := f.Geometry
	ws := f.Workspace
	bounds := Bounds(g)
	viewBox := geom.Rect{
		Min: geom.Coord{X: bounds.Min.X, Y: -bounds.Max.Y},
		Max: geom.Coord{X: bounds.Max.X, Y: -bounds.Min.Y},
	}

	s := &svgWriter{w: w}
	s.start(r.Width, r.Height, viewBox)
	s.printf("<!-- tick %d -->\n", f.Tick)
	s.group("transform", "scale(1,-1)", "stroke-linecap", "round")

	s.line(geom.Coord{X: bounds.Min.X, Y: 0}, geom.Coord{X: bounds.Max.X, Y: 0},
		"id", "axis-x", "stroke", colorAxis, "stroke-width", "0.5")
	s.line(geom.Coord{X: 0, Y: bounds.Min.Y}, geom.Coord{X: 0, Y: bounds.Max.Y},
		"id", "axis-y", "stroke", colorAxis, "stroke-width", "0.5")
	s.circle(coord(geometry.Origin), ws.MaxRadius,
		"id", "reach", "fill", "none", "stroke", colorReach, "stroke-dasharray", "4 2")
	if ws.MinRadius > 0 {
		s.circle(coord(geometry.Origin), ws.MinRadius,
			"id", "reach-inner", "fill", "none", "stroke", colorReach, "stroke-dasharray", "1 2")
	}
	s.line(geom.Coord{X: bounds.Min.X, Y: ws.GroundY}, geom.Coord{X: bounds.Max.X, Y: ws.GroundY},
		"id", "ground", "stroke", colorGround, "stroke-width", "1")
	if g.BaseLength > 0 && g.GroundOffset > 0 {
		s.rect(geom.Rect{
			Min: geom.Coord{X: -g.BaseLength / 2, Y: ws.GroundY},
			Max: geom.Coord{X: g.BaseLength / 2, Y: 0},
		}, "id", "base", "fill", colorBase)
	}

	links := f.Chain.Links()
	s.line(coord(links[0].Start), coord(links[0].End),
		"id", "link1", "stroke", colorLink1, "stroke-width", "4")
	s.line(coord(links[1].Start), coord(links[1].End),
		"id", "link2", "stroke", colorLink2, "stroke-width", "4")
	if g.HasWrist() {
		s.line(coord(f.Chain.Gripper.Start), coord(f.Chain.Gripper.End),
			"id", "gripper", "stroke", colorGripper, "stroke-width", "3")
	}
	s.circle(coord(f.Chain.Base), 2.5, "fill", "black")
	s.circle(coord(f.Chain.Elbow), 2.5, "fill", "black")
	s.circle(coord(f.Chain.Effector), 2.5, "fill", "black")

	s.endGroup()
	s.end()
	return s.err
}

// WriteFile is Write to a newly created file.
func (r *SVG) WriteFile(path string, f sim.Frame) error {
	return createAndWrite(path, func(w io.Writer) error { return r.Write(w, f) })
}
