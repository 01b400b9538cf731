package system

import (
	"time"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/core/event"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/world"
)

// MarineAnimationSystem maps a marine's combat and physics state to its
// animation track, then plays it.
type MarineAnimationSystem struct {
	world *world.State
}

func NewMarineAnimationSystem(ws *world.State) *MarineAnimationSystem {
	return &MarineAnimationSystem{world: ws}
}

func (s *MarineAnimationSystem) Descriptor() coresys.Descriptor {
	return coresys.Descriptor{
		Name:   NameMarineAnimation,
		After:  []string{NameMarineCollision},
		Reads:  []ecs.StoreID{s.world.Marines.ID(), s.world.Velocities.ID()},
		Writes: []ecs.StoreID{s.world.Tracks.ID()},
	}
}

func (s *MarineAnimationSystem) Update(d time.Duration) {
	dt := d.Seconds()
	ecs.Each3(s.world.Marines, s.world.Velocities, s.world.Tracks,
		func(id ecs.EntityID, m *component.MarineState, v *component.Velocity, tr *component.AnimationTrack) {
			want := SelectMarineTrack(m, v)
			from := tr.Track
			if setTrack(tr, s.world.Anim, want) {
				event.Emit(s.world.Bus, event.TrackChanged{Entity: id, From: from, To: want})
			}
			advanceTrack(tr, s.world.Anim, dt)
		})
}

// SelectMarineTrack picks the track for a marine. Precedence: attacking,
// then falling, then walking, then idle.
func SelectMarineTrack(m *component.MarineState, v *component.Velocity) anim.TrackID {
	switch {
	case m.Combat == component.CombatAttacking:
		return anim.TrackAttacking
	case !m.Grounded:
		return anim.TrackFalling
	case v.Linear.X != 0:
		return anim.TrackWalking
	default:
		return anim.TrackIdle
	}
}
