package component

import (
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/geom"
)

// BulletState is present on every bullet; its presence is what makes an
// entity a bullet. Spent is terminal: once set it is never cleared and the
// bullet takes no further part in collision.
type BulletState struct {
	Velocity geom.Vec2
	Lifetime float64 // seconds left before the bullet expires
	Age      float64 // seconds since spawn
	Damage   float64
	Owner    ecs.EntityID
	Spent    bool
}
