package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"outbreak/internal/audio"
	"outbreak/internal/display"
	"outbreak/internal/display/desktop"
	"outbreak/internal/logging"
	"outbreak/internal/pacing"
	"outbreak/internal/sim"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// RunCmd opens a window and steps at the configured rate until the window
// closes or the process is interrupted.
type RunCmd struct {
	Steps   int  `help:"Stop after this many steps (0 runs until the window closes)." default:"0"`
	NoAudio bool `name:"no-audio" help:"Disable audio cues even if the config enables them."`
}

func (c *RunCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	a.serveMetrics(ctx)

	pacer := pacing.New(cfg.Display.StepsPerSecond, cfg.Display.Burst)
	win, err := desktop.Open(desktop.Options{
		Width:  cfg.Display.WindowWidth,
		Height: cfg.Display.WindowHeight,
		Speed:  pacer,
		Done:   ctx.Done(),
	})
	if err != nil {
		a.abort()
		return err
	}
	sinks := append(display.Multi{win}, a.sinks()...)

	if cfg.Audio.Enabled && !c.NoAudio {
		dev, err := audio.Open(cfg.Audio.Volume)
		if err != nil {
			logging.With(a.log.Warn(), logging.RunID(a.runID), logging.Component("audio"), logging.ErrorField(err)).Msg("audio unavailable, continuing without sound")
		} else {
			sinks = append(sinks, audio.Sink{Out: dev})
		}
	}
	defer sinks.Close()

	a.started("window")
	start := time.Now()
	runErr := sim.Run(ctx, a.sim, sinks, pacer, c.Steps)
	if err := a.finish(time.Since(start)); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// BatchCmd runs without a window or pacing and writes the configured
// reports.
type BatchCmd struct {
	Steps int    `help:"Number of steps to run." default:"1600"`
	CSV   string `help:"Write the time series to this CSV file." type:"path"`
	Chart string `help:"Write the S/I/R/D chart to this PNG file." type:"path"`
	GIF   string `name:"gif" help:"Write an animated GIF of the plane to this file." type:"path"`
}

func (c *BatchCmd) Run(cli *CLI) error {
	if c.Steps <= 0 {
		return fmt.Errorf("--steps must be positive, got %d", c.Steps)
	}
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	if c.CSV != "" {
		cfg.Output.CSV = c.CSV
	}
	if c.Chart != "" {
		cfg.Output.Chart = c.Chart
	}
	if c.GIF != "" {
		cfg.Output.GIF = c.GIF
	}
	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	a.serveMetrics(ctx)

	a.started("batch")
	start := time.Now()
	runErr := sim.Run(ctx, a.sim, a.sinks(), nil, c.Steps)
	if err := a.finish(time.Since(start)); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// ValidateCmd checks a configuration and prints the resolved simulation
// parameters.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(cli *CLI) error {
	cfg, err := cli.loadConfig()
	if err != nil {
		return err
	}
	s := cfg.Sim()
	fmt.Printf("configuration OK: %gx%g plane, %d susceptible, %d infected, %d quarantined, %d cycles to fate, mortality %g\n",
		s.Width, s.Height, s.Susceptible, s.Infected, s.Quarantined, s.CyclesToFate, s.MortalityRate)
	return nil
}
