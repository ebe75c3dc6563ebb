// Package pacing provides the step clock for interactive runs.
package pacing

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/time/rate"
)

// Ticker lets one step through per tick at a fixed rate. A zero rate never
// blocks, which is what headless batch runs want.
type Ticker struct {
	lim *rate.Limiter
}

// New returns a ticker for stepsPerSecond with the given burst. Burst below
// one is treated as one.
func New(stepsPerSecond float64, burst int) *Ticker {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(stepsPerSecond)
	if stepsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &Ticker{lim: rate.NewLimiter(limit, burst)}
}

// Wait blocks until the next step may start or ctx is done.
func (t *Ticker) Wait(ctx context.Context) error {
	if err := t.lim.Wait(ctx); err != nil {
		return fmt.Errorf("pacing: %w", err)
	}
	return nil
}

// SetRate changes the step rate, for example when the viewer speeds up.
// Zero, negative or infinite rates remove pacing.
func (t *Ticker) SetRate(stepsPerSecond float64) {
	if stepsPerSecond <= 0 || math.IsInf(stepsPerSecond, 1) {
		t.lim.SetLimit(rate.Inf)
		return
	}
	t.lim.SetLimit(rate.Limit(stepsPerSecond))
}

// Rate reports the current steps per second, math.Inf(1) when unpaced.
func (t *Ticker) Rate() float64 {
	if t.lim.Limit() == rate.Inf {
		return math.Inf(1)
	}
	return float64(t.lim.Limit())
}
