package desktop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outbreak/internal/sim"
)

func TestFitViewKeepsAspect(t *testing.T) {
	v := fitView(600, 480, 600, 480+hudHeight)
	assert.Equal(t, 1.0, v.Scale)
	assert.Equal(t, 0.0, v.OffsetX)
	assert.Equal(t, float64(hudHeight), v.OffsetY)

	// Wider framebuffer: letterboxed horizontally.
	v = fitView(600, 480, 1600, 960+hudHeight)
	assert.Equal(t, 2.0, v.Scale)
	assert.Equal(t, 200.0, v.OffsetX)
	assert.Equal(t, float64(hudHeight), v.OffsetY)

	assert.Equal(t, view{Scale: 1}, fitView(600, 480, 0, 0))
}

func TestAppendSpritesDrawsDeadFirst(t *testing.T) {
	agents := []sim.AgentView{
		{Pos: sim.Vec2{X: 1, Y: 2}, Radius: 5, Color: sim.Palette.Infected, State: sim.Infected},
		{Pos: sim.Vec2{X: 3, Y: 4}, Radius: 5, Color: sim.Palette.Dead, State: sim.Dead},
	}
	buf := appendSprites(make([]float32, 3), agents)
	require.Len(t, buf, 2*floatsPerSprite)

	assert.Equal(t, []float32{3, 4, 10}, buf[0:3])
	assert.Equal(t, []float32{1, 2, 10}, buf[floatsPerSprite:floatsPerSprite+3])
	assert.InDelta(t, 190.0/255.0, buf[3], 1e-6)
	assert.Equal(t, float32(1), buf[floatsPerSprite-1])
}

func TestStripSegmentsSpanWidth(t *testing.T) {
	segs := stripSegments(sim.Counts{Susceptible: 50, Infected: 25, Dead: 25}, 101)
	require.Len(t, segs, 3)
	assert.Equal(t, segment{X: 0, W: 50, Color: sim.Palette.Susceptible}, segs[0])
	assert.Equal(t, segment{X: 50, W: 25, Color: sim.Palette.Infected}, segs[1])
	assert.Equal(t, segment{X: 75, W: 26, Color: sim.Palette.Dead}, segs[2])

	assert.Nil(t, stripSegments(sim.Counts{}, 100))
}

func TestTitle(t *testing.T) {
	rep := sim.StepReport{Day: 3, Counts: sim.Counts{Susceptible: 90, Infected: 6, Recovered: 3, Dead: 1}}
	assert.Equal(t, "DAYS: 3  UNINFECTED: 90  INFECTED: 6  RECOVERED: 3  DEAD: 1", Title(rep))
}

func TestSessionTransitions(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StateRunning, s.State)
	s.TogglePause()
	assert.Equal(t, StatePaused, s.State)
	s.TogglePause()
	assert.Equal(t, StateRunning, s.State)
	s.Close()
	s.TogglePause()
	assert.True(t, s.Closed())
	assert.Equal(t, "closed", s.State.String())
}

func TestSessionHoldReleasesOnDone(t *testing.T) {
	done := make(chan struct{})
	s := NewSession()
	assert.False(t, s.Hold(done), "running frames are not held")

	s.TogglePause()
	assert.True(t, s.Hold(done))
	assert.True(t, s.Hold(nil), "no done channel holds until unpaused")

	close(done)
	assert.False(t, s.Hold(done))
	assert.Equal(t, StatePaused, s.State)
}

func TestNextRate(t *testing.T) {
	tests := []struct {
		name   string
		cur    float64
		faster bool
		want   float64
	}{
		{"double", 30, true, 60},
		{"halve", 30, false, 15},
		{"ceiling", 700, true, maxStepRate},
		{"floor", 1.5, false, minStepRate},
		{"unpaced stays unpaced", math.Inf(1), true, math.Inf(1)},
		{"unpaced slows to ceiling", math.Inf(1), false, maxStepRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextRate(tt.cur, tt.faster))
		})
	}
}
