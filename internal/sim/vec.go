package sim

import "math"

// Vec2 is a position or velocity in plane units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Scale(k float64) Vec2 { return Vec2{X: v.X * k, Y: v.Y * k} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// RectF is an axis-aligned rectangle in plane space.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Intersects reports strict overlap; rectangles that only share an edge do
// not intersect.
func (r RectF) Intersects(o RectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

// footprint is the square hit box of side 2*radius centred on p.
func footprint(p Vec2, radius float64) RectF {
	return RectF{X0: p.X - radius, Y0: p.Y - radius, X1: p.X + radius, Y1: p.Y + radius}
}
