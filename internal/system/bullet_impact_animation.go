package system

import (
	"time"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/core/ecs"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/world"
)

// BulletImpactAnimationSystem plays the one-shot impact track of spent
// bullets and removes each bullet once the last impact frame has been on
// screen for its full duration.
type BulletImpactAnimationSystem struct {
	world *world.State
}

func NewBulletImpactAnimationSystem(ws *world.State) *BulletImpactAnimationSystem {
	return &BulletImpactAnimationSystem{world: ws}
}

func (s *BulletImpactAnimationSystem) Descriptor() coresys.Descriptor {
	return coresys.Descriptor{
		Name:   NameBulletImpactAnimation,
		After:  []string{NameBulletCollision},
		Reads:  []ecs.StoreID{s.world.Bullets.ID()},
		Writes: []ecs.StoreID{s.world.Tracks.ID()},
	}
}

func (s *BulletImpactAnimationSystem) Update(d time.Duration) {
	dt := d.Seconds()
	ecs.Each2(s.world.Bullets, s.world.Tracks, func(id ecs.EntityID, b *component.BulletState, tr *component.AnimationTrack) {
		if !b.Spent || tr.Track != anim.TrackBulletImpact {
			return
		}
		if advanceTrack(tr, s.world.Anim, dt) {
			s.world.ECS.MarkForDestruction(id)
		}
	})
}
