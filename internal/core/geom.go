// Package core provides the shared value types of the annihilator: geometry,
// input frames, the character screen buffer and runtime configuration.
// It has no external dependencies so the simulation stays pure and testable.
package core

import "math"

// Rect is an integer axis-aligned box in arena pixels.
// Bricks, border bars and UI regions are described with it.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether the point (x, y) lies inside the rectangle or on
// its border. Pointer hits use it, so a click on a button's outline counts.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Box returns the rectangle as a float box.
func (r Rect) Box() Box {
	return Box{X: float32(r.X), Y: float32(r.Y), W: float32(r.W), H: float32(r.H)}
}

// OriginDistance returns the Euclidean distance between the top-left corners
// of two rectangles.
func (r Rect) OriginDistance(other Rect) float64 {
	dx := float64(r.X - other.X)
	dy := float64(r.Y - other.Y)
	return math.Hypot(dx, dy)
}

// Vec2 is a float position or velocity in arena pixels.
type Vec2 struct {
	X, Y float32
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Box is a float axis-aligned box. Ball probes use it so sub-pixel motion
// is not lost before the brick test.
type Box struct {
	X, Y, W, H float32
}

// BoxAt creates a square box of the given size with its top-left corner at p.
func BoxAt(p Vec2, size float32) Box {
	return Box{X: p.X, Y: p.Y, W: size, H: size}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float32 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float32 { return b.Y + b.H }

// CenterX returns the horizontal center.
func (b Box) CenterX() float32 { return b.X + b.W/2 }

// Intersects reports whether two boxes overlap with positive area.
func (b Box) Intersects(o Box) bool {
	return b.OverlapsX(o) && b.OverlapsY(o)
}

// OverlapsX reports whether the horizontal extents overlap.
func (b Box) OverlapsX(o Box) bool {
	return b.X < o.Right() && o.X < b.Right()
}

// OverlapsY reports whether the vertical extents overlap.
func (b Box) OverlapsY(o Box) bool {
	return b.Y < o.Bottom() && o.Y < b.Bottom()
}

// PenetrationX returns the width of the horizontal overlap, or 0.
func (b Box) PenetrationX(o Box) float32 {
	return max(0, min(b.Right(), o.Right())-max(b.X, o.X))
}

// PenetrationY returns the height of the vertical overlap, or 0.
func (b Box) PenetrationY(o Box) float32 {
	return max(0, min(b.Bottom(), o.Bottom())-max(b.Y, o.Y))
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
