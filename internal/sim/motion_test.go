package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPlane = Plane{Width: 600, Height: 480}

func TestAdvanceWrapsAcrossFarEdge(t *testing.T) {
	a := Agent{Pos: Vec2{X: 599.5, Y: 10}, Vel: Vec2{X: 1}}
	Advance(&a, testPlane, NewRand(1))
	assert.InDelta(t, 0.5, a.Pos.X, 1e-9)
	assert.InDelta(t, 10.0, a.Pos.Y, 1e-9)
}

func TestAdvanceWrapsAcrossOrigin(t *testing.T) {
	a := Agent{Pos: Vec2{X: 0.5, Y: 0.25}, Vel: Vec2{X: -1, Y: -0.5}}
	Advance(&a, testPlane, NewRand(1))
	assert.InDelta(t, 599.5, a.Pos.X, 1e-9)
	assert.InDelta(t, 479.75, a.Pos.Y, 1e-9)
}

func TestAdvanceKeepsExactEdges(t *testing.T) {
	for _, p := range []Vec2{{X: 0, Y: 0}, {X: 600, Y: 480}, {X: 600, Y: 0}} {
		a := Agent{Pos: p}
		Advance(&a, testPlane, NewRand(1))
		assert.Equal(t, p, a.Pos)
		assert.True(t, testPlane.Contains(a.Pos))
	}
}

func TestAdvanceClampsToUnitSpeed(t *testing.T) {
	a := Agent{Pos: Vec2{X: 100, Y: 100}, Vel: Vec2{X: 10}}
	Advance(&a, testPlane, NewRand(1))

	// Position integrates the pre-clamp velocity.
	assert.InDelta(t, 110.0, a.Pos.X, 1e-9)
	assert.InDelta(t, 1.0, a.Vel.Len(), 1e-12)
	assert.InDelta(t, 1.0, a.Vel.X, 1e-12)
}

func TestAdvanceLeavesModerateSpeed(t *testing.T) {
	a := Agent{Pos: Vec2{X: 100, Y: 100}, Vel: Vec2{X: 2, Y: 2}}
	Advance(&a, testPlane, NewRand(1))
	assert.Equal(t, Vec2{X: 2, Y: 2}, a.Vel)
	assert.Equal(t, Vec2{X: 102, Y: 102}, a.Pos)
}

func TestAdvanceJitterStaysInUnitSquare(t *testing.T) {
	rng := NewRand(99)
	for i := 0; i < 200; i++ {
		a := Agent{Pos: Vec2{X: 50, Y: 50}, Jitter: true}
		Advance(&a, testPlane, rng)
		require.GreaterOrEqual(t, a.Vel.X, -1.0)
		require.LessOrEqual(t, a.Vel.X, 1.0)
		require.GreaterOrEqual(t, a.Vel.Y, -1.0)
		require.LessOrEqual(t, a.Vel.Y, 1.0)
	}
}

func TestAdvanceWithoutJitterDoesNotDraw(t *testing.T) {
	rng := NewRand(5)
	ref := NewRand(5)
	a := Agent{Pos: Vec2{X: 50, Y: 50}, Vel: Vec2{X: 1}}
	Advance(&a, testPlane, rng)
	assert.Equal(t, ref.NextU64(), rng.NextU64())
}

func TestAdvanceTicksOutcomeTimer(t *testing.T) {
	a := Agent{State: Infected}
	a.armTimer(3, 0.5)

	Advance(&a, testPlane, NewRand(1))
	assert.Equal(t, 2, a.Timer)
	assert.True(t, a.TimerActive)
	assert.Equal(t, OutcomePending, a.Outcome())
}

func TestAdvanceResolvesOutcome(t *testing.T) {
	tests := []struct {
		name      string
		mortality float64
		want      Outcome
	}{
		{"certain death", 1.0, OutcomeDead},
		{"certain recovery", 0.0, OutcomeRecovered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Agent{State: Infected}
			a.armTimer(1, tt.mortality)

			Advance(&a, testPlane, NewRand(3))
			assert.False(t, a.TimerActive)
			assert.Equal(t, 0, a.Timer)
			assert.Equal(t, tt.want, a.Outcome())
		})
	}
}

func TestAdvanceIgnoresTimerOutsideInfection(t *testing.T) {
	a := Agent{State: Recovered, Timer: 4}
	Advance(&a, testPlane, NewRand(1))
	assert.Equal(t, 4, a.Timer)
	assert.Equal(t, OutcomePending, a.Outcome())
}
