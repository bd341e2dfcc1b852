package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/armsim/internal/core/observability/log"
	"github.com/zeusync/armsim/internal/host"
	"github.com/zeusync/armsim/internal/injector"
	"github.com/zeusync/armsim/internal/telemetry"
	"github.com/zeusync/armsim/internal/terminal"
)

const keysHelp = "arrows/wasd move, space flips, [ ] turn the wrist, q quits\r\n"

func runInteractive(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var out outputFlags
	out.register(fs)
	if err := fs.Parse(args); err != nil {
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

	restore, err := terminal.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}
	defer func() {
		if err := restore(); err != nil {
			app.Logger.Warn("Failed to restore terminal", log.Error(err))
		}
	}()

	sched, err := host.NewTickerScheduler(cfg.Loop.TickInterval)
	if err != nil {
		return err
	}
	keyboard := terminal.NewKeyboard(cfg.Loop.HoldTimeout, cfg.Loop.WristStep)
	dash := telemetry.NewDashboard(stdout, telemetry.WithCarriageReturn())
	trace, err := attach(app, dash, out.plot != "")
	if err != nil {
		return err
	}
	loop := host.NewLoop(app.Sim, sched, app.Bus, app.Logger, keyboard).
		WithFrameFilter(host.EveryNth(out.every))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Stdin reads cannot be interrupted, so the reader is left running
	// outside the group and dies with the process.
	go func() {
		if err := keyboard.ReadFrom(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
			app.Logger.Warn("Keyboard reader stopped", log.Error(err))
		}
	}()

	fmt.Fprint(stdout, keysHelp)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-keyboard.Quit():
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		_, err := loop.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	runErr := g.Wait()
	fmt.Fprint(stdout, "\r\n")

	if err := writeOutputs(app, out, trace); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
