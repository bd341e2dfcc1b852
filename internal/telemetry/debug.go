package telemetry

import (
	"github.com/zeusync/armsim/internal/core/observability/log"
	"github.com/zeusync/armsim/internal/core/sim"
)

// Debug logs the pose of every frame at debug level.
type Debug struct {
	logger log.Log
}

func NewDebug(logger log.Log) *Debug {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Debug{logger: logger.With(log.String("component", "telemetry"))}
}

func (d *Debug) Show(f sim.Frame) error {
	if !d.logger.Enabled(log.LevelDebug) {
		return nil
	}
	t1, t2, t3 := f.Angles.Degrees()
	d.logger.Debug("Pose",
		log.Uint64("tick", f.Tick),
		log.Float64("x", f.State.Position.X),
		log.Float64("y", f.State.Position.Y),
		log.Float64("theta1_deg", t1),
		log.Float64("theta2_deg", t2),
		log.Float64("theta3_deg", t3),
		log.Bool("blocked", f.Blocked))
	return nil
}
