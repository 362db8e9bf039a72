// Package core provides the primitive types shared by the host and the modes:
// a cell screen buffer, colors, rectangles and per-frame input.
// It has no external dependencies so mode logic stays pure and testable.
package core

// Rect is an axis-aligned box in cell coordinates, anchored at its top-left.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains reports whether the point (x, y) is inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Box is a floating-point box anchored at its center. Sprites that move with
// sub-cell precision (the pet, foods, props) are positioned this way.
type Box struct {
	X, Y float64 // center
	W, H float64
}

// Contains reports whether the point lies strictly inside the box.
func (b Box) Contains(x, y float64) bool {
	return x > b.X-b.W/2 && x < b.X+b.W/2 &&
		y > b.Y-b.H/2 && y < b.Y+b.H/2
}

// Overlaps reports whether the two boxes overlap.
func (b Box) Overlaps(o Box) bool {
	dx := b.X - o.X
	if dx < 0 {
		dx = -dx
	}
	dy := b.Y - o.Y
	if dy < 0 {
		dy = -dy
	}
	return dx < (b.W+o.W)/2 && dy < (b.H+o.H)/2
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H/2
}

// TopLeft returns the integer cell of the box's top-left corner.
func (b Box) TopLeft() (int, int) {
	return int(b.X - b.W/2), int(b.Y - b.H/2)
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
