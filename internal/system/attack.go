package system

import (
	"math"
	"time"

	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/config"
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/core/event"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/input"
	"github.com/marines/sim/internal/world"
)

// AttackSystem fires bullets on the fire action, gated by AttackCooldown, and
// holds the marine in the attacking state while fire is held.
type AttackSystem struct {
	world *world.State
	cfg   config.WeaponConfig
}

func NewAttackSystem(ws *world.State, cfg config.WeaponConfig) *AttackSystem {
	return &AttackSystem{world: ws, cfg: cfg}
}

func (s *AttackSystem) Descriptor() coresys.Descriptor {
	return coresys.Descriptor{
		Name:   NameAttack,
		After:  []string{NameMarineAcceleration},
		Reads:  []ecs.StoreID{s.world.Transforms.ID(), s.world.Controlled.ID()},
		Writes: []ecs.StoreID{s.world.Marines.ID(), s.world.Cooldowns.ID()},
	}
}

func (s *AttackSystem) Update(d time.Duration) {
	dt := d.Seconds()
	in := s.world.Input()

	ecs.Each3(s.world.Cooldowns, s.world.Marines, s.world.Transforms,
		func(id ecs.EntityID, cd *component.AttackCooldown, m *component.MarineState, tr *component.Transform) {
			fire := s.world.Controlled.Has(id) && in.Has(input.Fire)

			if fire && cd.Remaining <= 0 {
				s.spawnBullet(id, m, tr)
				cd.Remaining = cd.Interval
				if cd.Remaining <= 0 {
					cd.Remaining = s.cfg.FireInterval
				}
			} else {
				cd.Remaining = math.Max(0, cd.Remaining-dt)
			}

			// The pose is held while fire is held, even on ticks the cooldown
			// swallows.
			if fire {
				m.Combat = component.CombatAttacking
				m.Timer = s.cfg.AttackDuration
				return
			}
			if m.Combat == component.CombatAttacking {
				m.Timer -= dt
				if m.Timer <= 0 {
					m.Timer = 0
					m.Combat = component.CombatLocomotion
				}
			}
		})
}

func (s *AttackSystem) spawnBullet(owner ecs.EntityID, m *component.MarineState, tr *component.Transform) {
	dir := m.Facing.Sign()
	spec := world.BulletSpec{
		Pos:      tr.Pos.Add(geom.V(s.cfg.MuzzleX*dir, s.cfg.MuzzleY)),
		Half:     geom.V(s.cfg.BulletHalfWidth, s.cfg.BulletHalfHeight),
		Velocity: geom.V(s.cfg.BulletSpeed*dir, 0),
		Damage:   s.cfg.BulletDamage,
		Lifetime: s.cfg.BulletLifetime,
		Owner:    owner,
	}
	ws := s.world
	ws.ECS.Spawn(func(id ecs.EntityID) {
		ws.AttachBullet(id, spec)
		event.Emit(ws.Bus, event.BulletFired{Bullet: id, Owner: owner, Position: spec.Pos})
	})
}
