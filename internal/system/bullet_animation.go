package system

import (
	"time"

	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/core/ecs"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/world"
)

// BulletAnimationSystem plays the flying track of live bullets.
type BulletAnimationSystem struct {
	world *world.State
}

func NewBulletAnimationSystem(ws *world.State) *BulletAnimationSystem {
	return &BulletAnimationSystem{world: ws}
}

func (s *BulletAnimationSystem) Descriptor() coresys.Descriptor {
	return coresys.Descriptor{
		Name:   NameBulletAnimation,
		After:  []string{NameBulletCollision},
		Reads:  []ecs.StoreID{s.world.Bullets.ID()},
		Writes: []ecs.StoreID{s.world.Tracks.ID()},
	}
}

func (s *BulletAnimationSystem) Update(d time.Duration) {
	dt := d.Seconds()
	ecs.Each2(s.world.Bullets, s.world.Tracks, func(_ ecs.EntityID, b *component.BulletState, tr *component.AnimationTrack) {
		if b.Spent {
			return
		}
		advanceTrack(tr, s.world.Anim, dt)
	})
}
