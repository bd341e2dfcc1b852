package render

import (
	"image/color"
	"io"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/zeusync/armsim/internal/core/sim"
)

// Sample is one recorded pose, angles in degrees.
type Sample struct {
	Tick   uint64
	Theta1 float64
	Theta2 float64
	Theta3 float64
}

// Trace records joint angles frame by frame and plots them.
type Trace struct {
	mu      sync.Mutex
	samples []Sample
}

func NewTrace() *Trace {
	return &Trace{}
}

// Record appends the frame's angles. It has the collaborator signature so it
// can be subscribed to the frame bus directly.
func (t *Trace) Record(f sim.Frame) error {
	t1, t2, t3 := f.Angles.Degrees()
	t.mu.Lock()
	t.samples = append(t.samples, Sample{Tick: f.Tick, Theta1: t1, Theta2: t2, Theta3: t3})
	t.mu.Unlock()
	return nil
}

func (t *Trace) Samples() []Sample {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

func (t *Trace) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.samples)
}

// Plot builds a line plot with one series per joint.
func (t *Trace) Plot() (*plot.Plot, error) {
	samples := t.Samples()
	if len(samples) == 0 {
		return nil, ErrEmptyTrace
	}

	p := plot.New()
	p.Title.Text = "Joint angles"
	p.X.Label.Text = "tick"
	p.Y.Label.Text = "angle (deg)"
	p.Add(plotter.NewGrid())

	series := []struct {
		name  string
		color color.Color
		pick  func(Sample) float64
	}{
		{"θ1", color.RGBA{R: 40, G: 90, B: 220, A: 255}, func(s Sample) float64 { return s.Theta1 }},
		{"θ2", color.RGBA{R: 30, G: 150, B: 60, A: 255}, func(s Sample) float64 { return s.Theta2 }},
		{"θ3", color.RGBA{R: 220, G: 50, B: 50, A: 255}, func(s Sample) float64 { return s.Theta3 }},
	}
	for _, sr := range series {
		pts := make(plotter.XYs, len(samples))
		for i, s := range samples {
			pts[i].X = float64(s.Tick)
			pts[i].Y = sr.pick(s)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = sr.color
		p.Add(line)
		p.Legend.Add(sr.name, line)
	}
	p.Legend.Top = true
	return p, nil
}

// WritePNG renders the plot at widthIn × heightIn inches.
func (t *Trace) WritePNG(w io.Writer, widthIn, heightIn float64) error {
	p, err := t.Plot()
	if err != nil {
		return err
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(96),
	)
	p.Draw(draw.New(c))

	_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}

func (t *Trace) SavePNG(path string, widthIn, heightIn float64) error {
	return createAndWrite(path, func(w io.Writer) error {
		return t.WritePNG(w, widthIn, heightIn)
	})
}
