package sim

import (
	"errors"
	"fmt"
	"math"
)

const (
	// StepsPerDay is the number of simulation steps that make up one day.
	StepsPerDay = 8

	DefaultWidth         = 600.0
	DefaultHeight        = 480.0
	DefaultRadius        = 5.0
	DefaultSusceptible   = 95
	DefaultInfected      = 5
	DefaultCyclesToFate  = 200
	DefaultMortalityRate = 0.03
)

// Config is the initial configuration of a run.
type Config struct {
	Width, Height float64

	Susceptible int
	Infected    int
	// Quarantined agents start susceptible, motionless and without jitter.
	Quarantined int

	// CyclesToFate is the number of steps an infection lasts before its
	// outcome is drawn.
	CyclesToFate int
	// MortalityRate is the probability that a resolved infection is fatal.
	MortalityRate float64

	// Randomize gives free-roaming agents a continuous random walk.
	Randomize bool

	// Radius of every agent footprint, used for contact and drawing.
	Radius float64

	Seed uint64

	// Debug checks every invariant after each step and panics on violation.
	Debug bool
}

func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Susceptible:   DefaultSusceptible,
		Infected:      DefaultInfected,
		CyclesToFate:  DefaultCyclesToFate,
		MortalityRate: DefaultMortalityRate,
		Randomize:     true,
		Radius:        DefaultRadius,
	}
}

// Population is the initial number of agents.
func (c Config) Population() int {
	return c.Susceptible + c.Infected + c.Quarantined
}

func (c Config) Plane() Plane {
	return Plane{Width: c.Width, Height: c.Height}
}

func (c Config) withDefaults() Config {
	if c.Radius == 0 {
		c.Radius = DefaultRadius
	}
	return c
}

// Validate reports every problem with c, joined, each wrapping
// ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if !(c.Width > 0) || math.IsInf(c.Width, 0) {
		bad("width must be positive, got %v", c.Width)
	}
	if !(c.Height > 0) || math.IsInf(c.Height, 0) {
		bad("height must be positive, got %v", c.Height)
	}
	if c.Susceptible < 0 {
		bad("susceptible population must not be negative, got %d", c.Susceptible)
	}
	if c.Infected < 0 {
		bad("infected population must not be negative, got %d", c.Infected)
	}
	if c.Quarantined < 0 {
		bad("quarantined population must not be negative, got %d", c.Quarantined)
	}
	if c.CyclesToFate < 0 {
		bad("cycles to fate must not be negative, got %d", c.CyclesToFate)
	}
	if !(c.MortalityRate >= 0 && c.MortalityRate <= 1) {
		bad("mortality rate must be in [0,1], got %v", c.MortalityRate)
	}
	if c.Radius < 0 || math.IsNaN(c.Radius) {
		bad("radius must not be negative, got %v", c.Radius)
	}
	return errors.Join(errs...)
}
