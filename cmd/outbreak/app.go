package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/google/uuid"

	"outbreak/internal/config"
	"outbreak/internal/display"
	"outbreak/internal/logging"
	"outbreak/internal/metrics"
	"outbreak/internal/report"
	"outbreak/internal/sim"
)

// app is one configured run: the simulation, its logger and the headless
// sinks that every command shares.
type app struct {
	runID string
	cfg   config.Config
	log   *bolt.Logger
	sim   *sim.Simulation

	recorder *report.Recorder
	gif      *display.GIF
	metrics  *metrics.Sink
}

// loadConfig reads the config file and applies command-line overrides.
func (cli *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return config.Config{}, err
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}
	if cli.LogFormat != "" {
		cfg.Log.Format = cli.LogFormat
	}
	if cli.Seed != nil {
		cfg.Seed = *cli.Seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return cfg, cfg.Validate()
}

func newApp(cfg config.Config) (*app, error) {
	a := &app{
		runID: uuid.NewString(),
		cfg:   cfg,
		log:   logging.New(cfg.Logging()),
	}

	s, err := sim.New(cfg.Sim())
	if err != nil {
		return nil, err
	}
	a.sim = s
	logging.Attach(s.Events(), a.log, a.runID)

	a.recorder = report.NewRecorder(a.runID)
	if cfg.Output.MetricsAddr != "" {
		m, err := metrics.New(a.runID)
		if err != nil {
			return nil, err
		}
		a.metrics = m
	}
	// Created last so no later setup step can strand the file.
	if cfg.Output.GIF != "" {
		g, err := display.CreateGIF(cfg.Output.GIF, cfg.Output.GIFEvery, 5)
		if err != nil {
			return nil, err
		}
		a.gif = g
	}
	return a, nil
}

// abort releases what newApp opened when the run never starts.
func (a *app) abort() {
	if a.gif == nil {
		return
	}
	if err := a.gif.Discard(); err != nil {
		logging.With(a.log.Warn(), logging.RunID(a.runID), logging.ErrorField(err)).Msg("discarding gif failed")
	}
}

// sinks returns the headless sinks, to be combined with a window or audio.
func (a *app) sinks() display.Multi {
	m := display.Multi{a.recorder}
	if a.gif != nil {
		m = append(m, a.gif)
	}
	if a.metrics != nil {
		m = append(m, a.metrics)
	}
	return m
}

// serveMetrics exposes the metrics endpoint until ctx is done.
func (a *app) serveMetrics(ctx context.Context) {
	if a.metrics == nil {
		return
	}
	go func() {
		if err := a.metrics.Serve(ctx, a.cfg.Output.MetricsAddr); err != nil {
			logging.With(a.log.Error(), logging.RunID(a.runID), logging.Component("metrics"), logging.ErrorField(err)).Msg("metrics endpoint failed")
		}
	}()
	logging.With(a.log.Info(), logging.RunID(a.runID), logging.Component("metrics"), logging.Str("addr", a.cfg.Output.MetricsAddr)).Msg("serving metrics")
}

func (a *app) started(mode string) {
	c := a.cfg.Sim()
	a.log.Info().
		Str("run_id", a.runID).
		Str("mode", mode).
		Int("population", c.Population()).
		Int("cycles_to_fate", c.CyclesToFate).
		Str("mortality_rate", fmt.Sprintf("%g", c.MortalityRate)).
		Bool("randomize", c.Randomize).
		Str("seed", fmt.Sprintf("%d", c.Seed)).
		Msg("run started")
}

// finish writes the reports and logs the summary line.
func (a *app) finish(elapsed time.Duration) error {
	var errs []error
	if a.gif != nil {
		errs = append(errs, a.gif.Close())
	}
	if path := a.cfg.Output.CSV; path != "" {
		errs = append(errs, a.recorder.SaveCSV(path))
	}
	if path := a.cfg.Output.Chart; path != "" {
		if err := a.recorder.SaveChart(path); err != nil && !errors.Is(err, report.ErrNoData) {
			errs = append(errs, err)
		}
	}

	rep := a.sim.LastReport()
	e := logging.With(a.log.Info(),
		logging.RunID(a.runID),
		logging.Step(rep.Step),
		logging.Day(rep.Day),
		logging.Counts(rep.Counts),
		logging.Duration(elapsed),
	)
	if peak, ok := a.recorder.Peak(); ok {
		e = e.Int("peak_infected", peak.Counts.Infected).Int("peak_day", peak.Day)
	}
	e.Msg(fmt.Sprintf("DAYS: %d  UNINFECTED: %d  INFECTED: %d  RECOVERED: %d  DEAD: %d",
		rep.Day, rep.Counts.Susceptible, rep.Counts.Infected, rep.Counts.Recovered, rep.Counts.Dead))

	if err := errors.Join(errs...); err != nil {
		logging.With(a.log.Error(), logging.RunID(a.runID), logging.ErrorField(err)).Msg("writing reports failed")
		return err
	}
	return nil
}
