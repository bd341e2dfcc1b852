package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/zeusync/armsim/internal/core/observability/log"
	"github.com/zeusync/armsim/internal/host"
	"github.com/zeusync/armsim/internal/injector"
	"github.com/zeusync/armsim/internal/script"
	"github.com/zeusync/armsim/internal/telemetry"
)

func runReplay(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	var out outputFlags
	out.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: replay takes one script path", errUsage)
	}

	sc, err := script.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	player, err := script.NewPlayer(sc)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(out.config)
	if err != nil {
		return err
	}
	app, cleanup, err := injector.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	trace, err := attach(app, telemetry.NewDashboard(stdout), out.plot != "")
	if err != nil {
		return err
	}

	loop := host.NewLoop(app.Sim, host.NewCountScheduler(player.Ticks()), app.Bus, app.Logger, player).
		WithFrameFilter(host.EveryNth(out.every))
	stats, err := loop.Run(ctx)
	if err != nil {
		return err
	}
	app.Logger.Info("Replay finished",
		log.String("script", sc.Name),
		log.Uint64("ticks", stats.Ticks),
		log.Uint64("frames", stats.Published))

	return writeOutputs(app, out, trace)
}
