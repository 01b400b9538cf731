package system

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/core/event"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/world"
)

// BulletCollisionSystem flies live bullets and resolves their hits. Each
// frame's move is swept from Prev to Pos and the earliest contact along it
// wins. On equal contact terrain beats marines, lower level index beats
// higher, and marines follow the marine store's iteration order. A hit
// leaves the bullet spent at the contact point on the impact track. A bullet
// that runs out of lifetime is removed without an impact.
type BulletCollisionSystem struct {
	world *world.State
	hook  DamageHook
	log   *zap.Logger
}

func NewBulletCollisionSystem(ws *world.State, hook DamageHook, log *zap.Logger) *BulletCollisionSystem {
	if hook == nil {
		hook = NopDamage{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BulletCollisionSystem{world: ws, hook: hook, log: log}
}

func (s *BulletCollisionSystem) Descriptor() coresys.Descriptor {
	return coresys.Descriptor{
		Name:   NameBulletCollision,
		After:  []string{NameMarineAcceleration},
		Reads:  []ecs.StoreID{s.world.Bounds.ID(), s.world.Marines.ID()},
		Writes: []ecs.StoreID{s.world.Transforms.ID(), s.world.Bullets.ID(), s.world.Tracks.ID(), s.world.Health.ID()},
	}
}

func (s *BulletCollisionSystem) Update(d time.Duration) {
	dt := d.Seconds()

	ecs.Each3(s.world.Bullets, s.world.Transforms, s.world.Bounds,
		func(id ecs.EntityID, b *component.BulletState, tr *component.Transform, bb *component.CollisionBounds) {
			if b.Spent {
				return
			}
			tr.Prev = tr.Pos
			tr.Pos = tr.Pos.Add(b.Velocity.Scale(dt))
			b.Age += dt

			if target, at, ok := s.firstContact(b.Owner, tr.Prev, tr.Pos, bb.Half); ok {
				tr.Pos = tr.Prev.Add(tr.Pos.Sub(tr.Prev).Scale(at))
				s.hit(id, b, tr, target)
				return
			}

			b.Lifetime -= dt
			if b.Lifetime <= 0 {
				b.Spent = true
				s.world.ECS.MarkForDestruction(id)
				event.Emit(s.world.Bus, event.BulletExpired{Bullet: id, Position: tr.Pos})
			}
		})
}

// firstContact returns what a box of half extents half moving from prev to
// pos touches first, and the fraction of the move at which it does. target
// is zero for terrain.
func (s *BulletCollisionSystem) firstContact(owner ecs.EntityID, prev, pos, half geom.Vec2) (target ecs.EntityID, at float64, ok bool) {
	swept := geom.Box(prev, half).Union(geom.Box(pos, half))
	at = math.Inf(1)

	for _, r := range s.world.Terrain.Overlapping(swept) {
		if t, hit := entry(prev, pos, half, r); hit && t < at {
			at, ok = t, true
		}
	}
	s.world.Marines.Each(func(mid ecs.EntityID, _ *component.MarineState) {
		if mid == owner {
			return
		}
		mb, has := s.world.Box(mid)
		if !has || !mb.Overlaps(swept) {
			return
		}
		if t, hit := entry(prev, pos, half, mb); hit && t < at {
			target, at, ok = mid, t, true
		}
	})
	return target, at, ok
}

// entry returns the fraction of the move from prev to pos at which a box of
// half extents half starts to overlap r, or false if it never does. Boxes
// that only touch do not overlap.
func entry(prev, pos, half geom.Vec2, r geom.AABB) (float64, bool) {
	grown := geom.Box(r.Center, r.Half.Add(half))
	lo, hi := 0.0, 1.0
	axes := [2][4]float64{
		{prev.X, pos.X - prev.X, grown.Left(), grown.Right()},
		{prev.Y, pos.Y - prev.Y, grown.Top(), grown.Bottom()},
	}
	for _, a := range axes {
		p, d, lower, upper := a[0], a[1], a[2], a[3]
		if d == 0 {
			if p <= lower || p >= upper {
				return 0, false
			}
			continue
		}
		t0, t1 := (lower-p)/d, (upper-p)/d
		if d < 0 {
			t0, t1 = t1, t0
		}
		lo = math.Max(lo, t0)
		hi = math.Min(hi, t1)
		if lo >= hi {
			return 0, false
		}
	}
	return lo, true
}

func (s *BulletCollisionSystem) hit(id ecs.EntityID, b *component.BulletState, tr *component.Transform, target ecs.EntityID) {
	b.Spent = true
	b.Velocity = geom.Vec2{}
	if trk, ok := s.world.Tracks.Get(id); ok {
		setTrack(trk, s.world.Anim, anim.TrackBulletImpact)
	}

	var dealt float64
	if !target.IsZero() {
		dealt = s.hook.ApplyBulletDamage(Hit{
			Bullet:   id,
			Owner:    b.Owner,
			Target:   target,
			Damage:   b.Damage,
			Age:      b.Age,
			Lifetime: b.Lifetime,
		})
		s.log.Debug("bullet hit marine",
			zap.Uint32("bullet", id.Index()),
			zap.Uint32("target", target.Index()),
			zap.Float64("damage", dealt))
	}

	event.Emit(s.world.Bus, event.BulletHit{
		Bullet:   id,
		Owner:    b.Owner,
		Target:   target,
		Terrain:  target.IsZero(),
		Position: tr.Pos,
		Damage:   dealt,
	})
}
