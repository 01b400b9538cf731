package system

import (
	"math"
	"time"

	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/core/event"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/world"
)

const (
	// groundProbe is how far below its feet a marine looks for support.
	groundProbe = 1e-3
	// skin shrinks query boxes so a marine snapped flush against a face is
	// not pulled back in by rounding on the next pass.
	skin = 1e-6
)

// MarineCollisionSystem pushes marines out of terrain. The vertical axis is
// resolved first with the box at the previous x, then the horizontal axis at
// the resolved y, so a diagonal move into a platform corner lands on it
// instead of slipping through the edge.
type MarineCollisionSystem struct {
	world *world.State
}

func NewMarineCollisionSystem(ws *world.State) *MarineCollisionSystem {
	return &MarineCollisionSystem{world: ws}
}

func (s *MarineCollisionSystem) Descriptor() coresys.Descriptor {
	return coresys.Descriptor{
		Name:   NameMarineCollision,
		After:  []string{NameMarineAcceleration},
		Reads:  []ecs.StoreID{s.world.Bounds.ID()},
		Writes: []ecs.StoreID{s.world.Transforms.ID(), s.world.Velocities.ID(), s.world.Marines.ID()},
	}
}

func (s *MarineCollisionSystem) Update(_ time.Duration) {
	ecs.Each4(s.world.Marines, s.world.Transforms, s.world.Velocities, s.world.Bounds,
		func(id ecs.EntityID, m *component.MarineState, tr *component.Transform, v *component.Velocity, bb *component.CollisionBounds) {
			was := m.Grounded
			landed := s.resolveVertical(tr, v, bb.Half)
			s.resolveHorizontal(tr, v, bb.Half)

			supported := false
			if v.Linear.Y >= 0 {
				feet := geom.Box(tr.Pos.Add(geom.V(0, groundProbe)), shrink(bb.Half))
				_, supported = s.world.Terrain.First(feet)
			}
			m.Grounded = landed || supported
			if m.Grounded && !was {
				event.Emit(s.world.Bus, event.MarineLanded{Marine: id, Y: tr.Pos.Y})
			}
		})
}

// resolveVertical snaps the marine out of any rect it moved into vertically
// and reports whether it landed on top of one.
func (s *MarineCollisionSystem) resolveVertical(tr *component.Transform, v *component.Velocity, half geom.Vec2) bool {
	dy := tr.Pos.Y - tr.Prev.Y
	if dy == 0 {
		return false
	}
	box := geom.Box(geom.V(tr.Prev.X, tr.Pos.Y), shrink(half))
	surface := math.Inf(1)
	ceiling := math.Inf(-1)
	s.world.Terrain.Query(box, func(_ int, r geom.AABB) bool {
		surface = math.Min(surface, r.Top())
		ceiling = math.Max(ceiling, r.Bottom())
		return true
	})

	switch {
	case dy > 0 && !math.IsInf(surface, 1):
		tr.Pos.Y = surface - half.Y
		if v.Linear.Y > 0 {
			v.Linear.Y = 0
		}
		return true
	case dy < 0 && !math.IsInf(ceiling, -1):
		tr.Pos.Y = ceiling + half.Y
		if v.Linear.Y < 0 {
			v.Linear.Y = 0
		}
	}
	return false
}

// resolveHorizontal clamps the marine against the face of any wall it moved
// into and stops it.
func (s *MarineCollisionSystem) resolveHorizontal(tr *component.Transform, v *component.Velocity, half geom.Vec2) {
	dx := tr.Pos.X - tr.Prev.X
	if dx == 0 {
		return
	}
	box := geom.Box(tr.Pos, shrink(half))
	left := math.Inf(1)
	right := math.Inf(-1)
	s.world.Terrain.Query(box, func(_ int, r geom.AABB) bool {
		left = math.Min(left, r.Left())
		right = math.Max(right, r.Right())
		return true
	})

	switch {
	case dx > 0 && !math.IsInf(left, 1):
		tr.Pos.X = left - half.X
		v.Linear.X = 0
	case dx < 0 && !math.IsInf(right, -1):
		tr.Pos.X = right + half.X
		v.Linear.X = 0
	}
}

func shrink(half geom.Vec2) geom.Vec2 {
	return geom.V(half.X-skin, half.Y-skin)
}
