// Package geom holds the 2D vector and axis-aligned box math shared by the
// simulation. World space is y-down: positive Y points towards the ground.
package geom

import "math"

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }
func (v Vec2) Approx(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// AABB is an axis-aligned box stored as center and half-extents, the same
// shape CollisionBounds describes relative to a Transform.
type AABB struct {
	Center Vec2
	Half   Vec2
}

// Box builds an AABB from a center and half-extents.
func Box(center, half Vec2) AABB {
	return AABB{Center: center, Half: half}
}

// FromRect builds an AABB from a top-left corner and a size.
func FromRect(x, y, w, h float64) AABB {
	return AABB{
		Center: Vec2{x + w/2, y + h/2},
		Half:   Vec2{w / 2, h / 2},
	}
}

func (b AABB) Left() float64   { return b.Center.X - b.Half.X }
func (b AABB) Right() float64  { return b.Center.X + b.Half.X }
func (b AABB) Top() float64    { return b.Center.Y - b.Half.Y }
func (b AABB) Bottom() float64 { return b.Center.Y + b.Half.Y }
func (b AABB) Min() Vec2       { return Vec2{b.Left(), b.Top()} }
func (b AABB) Size() Vec2      { return b.Half.Scale(2) }

// Overlaps reports interval overlap on both axes. Boxes that only touch
// along an edge do not overlap, so a marine resting exactly on a platform is
// not in collision with it.
func (b AABB) Overlaps(o AABB) bool {
	if b.Right() <= o.Left() || o.Right() <= b.Left() {
		return false
	}
	if b.Bottom() <= o.Top() || o.Bottom() <= b.Top() {
		return false
	}
	return true
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	left := math.Min(b.Left(), o.Left())
	top := math.Min(b.Top(), o.Top())
	right := math.Max(b.Right(), o.Right())
	bottom := math.Max(b.Bottom(), o.Bottom())
	return FromRect(left, top, right-left, bottom-top)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
