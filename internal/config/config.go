// Package config loads run configuration from YAML, .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"outbreak/internal/logging"
	"outbreak/internal/sim"
)

// Environment overrides, applied after the file is read.
const (
	EnvSeed     = "OUTBREAK_SEED"
	EnvLogLevel = "OUTBREAK_LOG_LEVEL"
)

var ErrConfig = errors.New("invalid configuration")

type Config struct {
	Plane      Plane      `yaml:"plane"`
	Population Population `yaml:"population"`
	Disease    Disease    `yaml:"disease"`
	Randomize  bool       `yaml:"randomize"`
	// Seed 0 picks a seed from the clock at start.
	Seed    uint64  `yaml:"seed"`
	Debug   bool    `yaml:"debug"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
	Output  Output  `yaml:"output"`
	Audio   Audio   `yaml:"audio"`
}

type Plane struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Population struct {
	Susceptible int `yaml:"susceptible"`
	Infected    int `yaml:"infected"`
	Quarantined int `yaml:"quarantined"`
}

type Disease struct {
	CyclesToFate  int     `yaml:"cycles_to_fate"`
	MortalityRate float64 `yaml:"mortality_rate"`
	Radius        float64 `yaml:"radius"`
}

// Display configures the desktop window and the step rate.
type Display struct {
	WindowWidth    int     `yaml:"window_width"`
	WindowHeight   int     `yaml:"window_height"`
	StepsPerSecond float64 `yaml:"steps_per_second"`
	// Burst lets the pacer catch up after a slow frame.
	Burst int `yaml:"burst"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Output names the files and endpoints written by a run. Empty disables.
type Output struct {
	CSV         string `yaml:"csv"`
	Chart       string `yaml:"chart"`
	GIF         string `yaml:"gif"`
	GIFEvery    int    `yaml:"gif_every"`
	MetricsAddr string `yaml:"metrics_addr"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Default reproduces the classic run: 95 susceptible and 5 infected agents
// on a 600x480 plane, stepped 30 times a second.
func Default() Config {
	return Config{
		Plane: Plane{Width: sim.DefaultWidth, Height: sim.DefaultHeight},
		Population: Population{
			Susceptible: sim.DefaultSusceptible,
			Infected:    sim.DefaultInfected,
		},
		Disease: Disease{
			CyclesToFate:  sim.DefaultCyclesToFate,
			MortalityRate: sim.DefaultMortalityRate,
			Radius:        sim.DefaultRadius,
		},
		Randomize: true,
		Display: Display{
			WindowWidth:    600,
			WindowHeight:   480,
			StepsPerSecond: 30,
			Burst:          1,
		},
		Log:    Log{Level: "info", Format: "console"},
		Output: Output{GIFEvery: 4},
		Audio:  Audio{Volume: 0.3},
	}
}

// Load reads path on top of Default. An empty path yields the defaults.
// .env files are loaded first so ${VAR} references in the file resolve.
func Load(path string) (Config, error) {
	if err := LoadEnvFiles(path); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse expands environment references in data and decodes it into cfg.
// Fields absent from data keep their current values.
func Parse(data []byte, cfg *Config) error {
	expanded := expandEnvVars(string(data))
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if s := os.Getenv(EnvSeed); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrConfig, EnvSeed, s, err)
		}
		c.Seed = v
	}
	if s := os.Getenv(EnvLogLevel); s != "" {
		c.Log.Level = s
	}
	return nil
}

// Validate checks the outer configuration and the simulation parameters.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...)))
	}

	if c.Display.WindowWidth <= 0 || c.Display.WindowHeight <= 0 {
		bad("window size must be positive, got %dx%d", c.Display.WindowWidth, c.Display.WindowHeight)
	}
	if c.Display.StepsPerSecond < 0 {
		bad("steps_per_second must not be negative, got %v", c.Display.StepsPerSecond)
	}
	if c.Display.Burst < 0 {
		bad("burst must not be negative, got %d", c.Display.Burst)
	}
	if !logging.ValidLevel(c.Log.Level) {
		bad("unknown log level %q", c.Log.Level)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		bad("log format must be console or json, got %q", c.Log.Format)
	}
	if c.Output.GIFEvery < 1 {
		bad("gif_every must be at least 1, got %d", c.Output.GIFEvery)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		bad("audio volume must be in [0,1], got %v", c.Audio.Volume)
	}
	errs = append(errs, c.Sim().Validate())
	return errors.Join(errs...)
}

// Sim returns the simulation parameters.
func (c Config) Sim() sim.Config {
	return sim.Config{
		Width:         c.Plane.Width,
		Height:        c.Plane.Height,
		Susceptible:   c.Population.Susceptible,
		Infected:      c.Population.Infected,
		Quarantined:   c.Population.Quarantined,
		CyclesToFate:  c.Disease.CyclesToFate,
		MortalityRate: c.Disease.MortalityRate,
		Randomize:     c.Randomize,
		Radius:        c.Disease.Radius,
		Seed:          c.Seed,
		Debug:         c.Debug,
	}
}

// Logging returns the logger configuration.
func (c Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	return cfg
}
