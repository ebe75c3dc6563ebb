package sim

import "math"

// VMax is the speed above which a velocity is clamped.
const VMax = 3.0

// Plane is the bounded, periodic world.
type Plane struct {
	Width, Height float64
}

// Contains reports whether p lies in [0,Width]×[0,Height]. Both edges are
// valid positions after a wrap.
func (pl Plane) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= pl.Width && p.Y >= 0 && p.Y <= pl.Height
}

// wrap applies the periodic boundary per axis. The overshoot is carried to
// the opposite side; coordinates exactly on either edge are left alone, so 0
// and the edge length are both valid positions.
func (pl Plane) wrap(p Vec2) Vec2 {
	p.X = wrapAxis(p.X, pl.Width)
	p.Y = wrapAxis(p.Y, pl.Height)
	return p
}

func wrapAxis(v, size float64) float64 {
	if v < 0 {
		return math.Mod(v, size) + size
	}
	if v > size {
		return math.Mod(v, size)
	}
	return v
}

// Advance moves a by one step: integrate, wrap, clamp, jitter, then tick the
// outcome timer of an infected agent.
func Advance(a *Agent, pl Plane, rng *Rand) {
	a.Pos = pl.wrap(a.Pos.Add(a.Vel))

	// Over-speed collapses to unit speed, not to VMax.
	if n := a.Vel.Len(); n > VMax {
		a.Vel = a.Vel.Scale(1 / n)
	}

	if a.Jitter {
		a.Vel = a.Vel.Add(rng.UnitSquare())
	}

	if a.State != Infected || !a.TimerActive {
		return
	}
	a.Timer--
	if a.Timer > 0 {
		return
	}
	a.TimerActive = false
	if rng.Float64() < a.MortalityRate {
		a.outcome = OutcomeDead
	} else {
		a.outcome = OutcomeRecovered
	}
}
