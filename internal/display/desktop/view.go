package desktop

import (
	"fmt"
	"math"

	"outbreak/internal/sim"
)

// floatsPerSprite is the vertex layout: x, y, size, r, g, b, a.
const floatsPerSprite = 7

// hudHeight is the population strip height in framebuffer pixels.
const hudHeight = 8

// view maps plane coordinates into the framebuffer, preserving aspect and
// leaving the top hudHeight pixels for the population strip.
type view struct {
	Scale            float64
	OffsetX, OffsetY float64
}

func fitView(planeW, planeH float64, fbW, fbH int) view {
	availH := float64(fbH - hudHeight)
	if planeW <= 0 || planeH <= 0 || fbW <= 0 || availH <= 0 {
		return view{Scale: 1}
	}
	scale := math.Min(float64(fbW)/planeW, availH/planeH)
	return view{
		Scale:   scale,
		OffsetX: (float64(fbW) - planeW*scale) / 2,
		OffsetY: hudHeight + (availH-planeH*scale)/2,
	}
}

// appendSprites writes one point sprite per agent. Dead agents are drawn
// first so the living stay on top.
func appendSprites(buf []float32, agents []sim.AgentView) []float32 {
	buf = buf[:0]
	for pass := 0; pass < 2; pass++ {
		for _, a := range agents {
			if (a.State == sim.Dead) != (pass == 0) {
				continue
			}
			r, g, b := a.Color.Floats()
			buf = append(buf,
				float32(a.Pos.X), float32(a.Pos.Y), float32(2*a.Radius),
				r, g, b, 1,
			)
		}
	}
	return buf
}

// segment is one coloured run of the population strip, in pixels.
type segment struct {
	X, W  int
	Color sim.RGB
}

// stripSegments splits width pixels among the four groups in proportion to
// their counts, in S, I, R, D order. Rounding slack goes to the last
// non-empty group so the strip always spans the full width.
func stripSegments(c sim.Counts, width int) []segment {
	total := c.Total()
	if total == 0 || width <= 0 {
		return nil
	}
	segs := make([]segment, 0, 4)
	x := 0
	for s := sim.Susceptible; s <= sim.Dead; s++ {
		n := c.Of(s)
		if n == 0 {
			continue
		}
		w := n * width / total
		segs = append(segs, segment{X: x, W: w, Color: s.Color()})
		x += w
	}
	segs[len(segs)-1].W += width - x
	return segs
}

// Title is the window title for a step: the classic day counter and the
// four group sizes.
func Title(r sim.StepReport) string {
	return fmt.Sprintf("DAYS: %d  UNINFECTED: %d  INFECTED: %d  RECOVERED: %d  DEAD: %d",
		r.Day, r.Counts.Susceptible, r.Counts.Infected, r.Counts.Recovered, r.Counts.Dead)
}
