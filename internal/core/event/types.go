package event

import (
	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/geom"
)

type BulletFired struct {
	Bullet   ecs.EntityID
	Owner    ecs.EntityID
	Position geom.Vec2
}

// BulletHit is emitted once per bullet, on the frame it becomes spent by a
// collision. Target is zero for terrain hits.
type BulletHit struct {
	Bullet   ecs.EntityID
	Owner    ecs.EntityID
	Target   ecs.EntityID
	Terrain  bool
	Position geom.Vec2
	Damage   float64
}

type BulletExpired struct {
	Bullet   ecs.EntityID
	Position geom.Vec2
}

type MarineLanded struct {
	Marine ecs.EntityID
	Y      float64
}

type MarineKilled struct {
	Marine ecs.EntityID
	Killer ecs.EntityID
}

type TrackChanged struct {
	Entity ecs.EntityID
	From   anim.TrackID
	To     anim.TrackID
}
