package layout

import "math"

// Point is a center coordinate. X grows to the right and Y grows downward,
// matching SVG user space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Rect is an axis-aligned bounding box in the same coordinate space as Point.
type Rect struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// emptyRect is the identity for Extend.
func emptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Width returns the horizontal span of the box.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span of the box.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Extend grows r to include a disc of the given radius around p.
func (r Rect) Extend(p Point, radius float64) Rect {
	return Rect{
		MinX: min(r.MinX, p.X-radius),
		MinY: min(r.MinY, p.Y-radius),
		MaxX: max(r.MaxX, p.X+radius),
		MaxY: max(r.MaxY, p.Y+radius),
	}
}

// Pad returns r grown by m on every side. Negative m shrinks it.
func (r Rect) Pad(m float64) Rect {
	return Rect{MinX: r.MinX - m, MinY: r.MinY - m, MaxX: r.MaxX + m, MaxY: r.MaxY + m}
}
