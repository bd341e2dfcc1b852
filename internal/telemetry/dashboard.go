package telemetry

import (
	"fmt"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/armsim/internal/core/sim"
)

// Line formats the dashboard row for a frame: effector position followed by
// the three joint angles in degrees.
func Line(f sim.Frame) string {
	t1, t2, t3 := f.Angles.Degrees()
	return fmt.Sprintf("x=%8.3f y=%8.3f  θ1=%8.3f θ2=%8.3f θ3=%8.3f",
		f.State.Position.X, f.State.Position.Y, t1, t2, t3)
}

// Dashboard writes one line per frame and skips lines identical to the last
// one written.
type Dashboard struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
	suffix string
	last   uint64
	seeded bool

	written uint64
	skipped uint64
}

type DashboardOption func(*Dashboard)

// WithCarriageReturn rewrites the current terminal line instead of
// scrolling. Raw mode disables the implicit carriage return on newline.
func WithCarriageReturn() DashboardOption {
	return func(d *Dashboard) {
		d.prefix = "\r"
		d.suffix = "\x1b[K"
	}
}

func NewDashboard(w io.Writer, opts ...DashboardOption) *Dashboard {
	d := &Dashboard{w: w, suffix: "\n"}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Show writes the frame's line unless it matches the previous one.
func (d *Dashboard) Show(f sim.Frame) error {
	line := Line(f)
	sum := xxhash.Sum64String(line)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seeded && sum == d.last {
		d.skipped++
		return nil
	}
	if _, err := io.WriteString(d.w, d.prefix+line+d.suffix); err != nil {
		return err
	}
	d.last = sum
	d.seeded = true
	d.written++
	return nil
}

// Counts returns how many lines were written and suppressed.
func (d *Dashboard) Counts() (written, skipped uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.written, d.skipped
}
