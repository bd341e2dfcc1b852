package main

import (
	"flag"

	"github.com/zeusync/armsim/internal/config"
	"github.com/zeusync/armsim/internal/core/observability/log"
	"github.com/zeusync/armsim/internal/core/sim"
	"github.com/zeusync/armsim/internal/host"
	"github.com/zeusync/armsim/internal/injector"
	"github.com/zeusync/armsim/internal/render"
	"github.com/zeusync/armsim/internal/telemetry"
)

type outputFlags struct {
	config string
	svg    string
	plot   string
	every  uint64
}

func (o *outputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&o.config, "config", "", "YAML config file (defaults when empty)")
	fs.StringVar(&o.svg, "svg", "", "write the final frame as SVG to this path")
	fs.StringVar(&o.plot, "plot", "", "write a joint-angle plot PNG to this path")
	fs.Uint64Var(&o.every, "every", 1, "hand only every n-th frame to the dashboard and plot")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		c := config.Default()
		return c, c.Validate()
	}
	return config.LoadFile(path)
}

// attach subscribes the dashboard, the debug logger and, when a plot is
// wanted, a trace recorder to the frame bus.
func attach(app *injector.App, dash *telemetry.Dashboard, wantTrace bool) (*render.Trace, error) {
	collaborators := []func(sim.Frame) error{
		dash.Show,
		telemetry.NewDebug(app.Logger).Show,
	}
	var trace *render.Trace
	if wantTrace {
		trace = render.NewTrace()
		collaborators = append(collaborators, trace.Record)
	}
	for _, fn := range collaborators {
		if _, err := host.OnFrame(app.Bus, fn); err != nil {
			return nil, err
		}
	}
	return trace, nil
}

// writeOutputs saves the requested artifacts. A failed artifact is logged
// and the next one is still attempted.
func writeOutputs(app *injector.App, o outputFlags, trace *render.Trace) error {
	var firstErr error
	if o.svg != "" {
		r := render.NewSVG(app.Config.Render.Width, app.Config.Render.Height)
		if err := r.WriteFile(o.svg, app.Sim.Frame()); err != nil {
			app.Logger.Error("Failed to write SVG", log.String("path", o.svg), log.Error(err))
			firstErr = err
		} else {
			app.Logger.Info("SVG written", log.String("path", o.svg))
		}
	}
	if o.plot != "" && trace != nil {
		if err := trace.SavePNG(o.plot, 8, 5); err != nil {
			app.Logger.Error("Failed to write plot", log.String("path", o.plot), log.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		} else {
			app.Logger.Info("Plot written", log.String("path", o.plot), log.Int("samples", trace.Len()))
		}
	}
	return firstErr
}
