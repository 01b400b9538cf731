package component

import "github.com/marines/sim/internal/geom"

// Transform stores an entity's world position and draw layer.
// Prev is the position at the start of the current frame's movement, written
// by the system that integrates the entity.
type Transform struct {
	Pos   geom.Vec2
	Prev  geom.Vec2
	Depth float64
}

// Velocity stores the motion state of a moving entity.
// Pure data, zero methods — all mutations happen in System functions.
type Velocity struct {
	Linear   geom.Vec2 // units per second
	Accel    geom.Vec2 // current acceleration input, units per second²
	MaxSpeed float64   // horizontal clamp
}

// CollisionBounds are the half-extents of an AABB centred on the Transform.
type CollisionBounds struct {
	Half geom.Vec2
}
