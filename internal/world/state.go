package world

import (
	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/core/event"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/input"
	"github.com/marines/sim/internal/terrain"
)

// State is the simulation's shared data: the ECS world with one store per
// component type, the static terrain, the animation table, the event bus and
// this frame's input snapshot.
// Accessed only from the frame loop; stores are not locked, the scheduler
// keeps concurrent systems on disjoint write sets.
type State struct {
	ECS *ecs.World

	Transforms    *ecs.Store[component.Transform]
	Velocities    *ecs.Store[component.Velocity]
	Marines       *ecs.Store[component.MarineState]
	Cooldowns     *ecs.Store[component.AttackCooldown]
	Bullets       *ecs.Store[component.BulletState]
	Bounds        *ecs.Store[component.CollisionBounds]
	Tracks        *ecs.Store[component.AnimationTrack]
	CameraTargets *ecs.Store[component.CameraTarget]
	Controlled    *ecs.Store[component.Controlled]
	Health        *ecs.Store[component.Health]

	Terrain *terrain.Terrain
	Anim    *anim.Table
	Bus     *event.Bus

	input input.Snapshot
}

func NewState(t *terrain.Terrain, tracks *anim.Table, bus *event.Bus) *State {
	s := &State{
		ECS:           ecs.NewWorld(),
		Transforms:    ecs.NewStore[component.Transform](),
		Velocities:    ecs.NewStore[component.Velocity](),
		Marines:       ecs.NewStore[component.MarineState](),
		Cooldowns:     ecs.NewStore[component.AttackCooldown](),
		Bullets:       ecs.NewStore[component.BulletState](),
		Bounds:        ecs.NewStore[component.CollisionBounds](),
		Tracks:        ecs.NewStore[component.AnimationTrack](),
		CameraTargets: ecs.NewStore[component.CameraTarget](),
		Controlled:    ecs.NewStore[component.Controlled](),
		Health:        ecs.NewStore[component.Health](),
		Terrain:       t,
		Anim:          tracks,
		Bus:           bus,
	}
	if s.Terrain == nil {
		s.Terrain = terrain.New(nil)
	}
	if s.Anim == nil {
		s.Anim = anim.DefaultTable()
	}
	if s.Bus == nil {
		s.Bus = event.NewBus()
	}

	reg := s.ECS.Registry()
	reg.Register(s.Transforms)
	reg.Register(s.Velocities)
	reg.Register(s.Marines)
	reg.Register(s.Cooldowns)
	reg.Register(s.Bullets)
	reg.Register(s.Bounds)
	reg.Register(s.Tracks)
	reg.Register(s.CameraTargets)
	reg.Register(s.Controlled)
	reg.Register(s.Health)
	return s
}

// SetInput installs the host's action snapshot for the coming frame.
func (s *State) SetInput(in input.Snapshot) { s.input = in }

func (s *State) Input() input.Snapshot { return s.input }

// IsMarine reports whether id is a live entity carrying MarineState.
func (s *State) IsMarine(id ecs.EntityID) bool {
	return s.ECS.Alive(id) && s.Marines.Has(id)
}

// MarineSpec describes a marine placed at scene load.
type MarineSpec struct {
	Pos          geom.Vec2
	Half         geom.Vec2
	Facing       component.Facing
	MaxSpeed     float64
	FireInterval float64
	HP           float64
	Controlled   bool
}

// AddMarine creates a marine immediately. Scene load only; systems queue
// entities through the command buffer instead.
func (s *State) AddMarine(m MarineSpec) ecs.EntityID {
	id := s.ECS.CreateEntity()
	facing := m.Facing
	if facing == 0 {
		facing = component.FacingRight
	}
	s.Transforms.Set(id, &component.Transform{Pos: m.Pos, Prev: m.Pos, Depth: 1})
	s.Velocities.Set(id, &component.Velocity{MaxSpeed: m.MaxSpeed})
	s.Marines.Set(id, &component.MarineState{Facing: facing})
	s.Cooldowns.Set(id, &component.AttackCooldown{Interval: m.FireInterval})
	s.Bounds.Set(id, &component.CollisionBounds{Half: m.Half})
	idle := s.Anim.Get(anim.TrackIdle)
	s.Tracks.Set(id, &component.AnimationTrack{Track: anim.TrackIdle, Loop: idle.Loop})
	if m.HP > 0 {
		s.Health.Set(id, &component.Health{HP: m.HP, Max: m.HP})
	}
	if m.Controlled {
		s.Controlled.Set(id, &component.Controlled{})
	}
	return id
}

// AddCamera creates the camera entity following target.
func (s *State) AddCamera(pos geom.Vec2, target ecs.EntityID) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Transforms.Set(id, &component.Transform{Pos: pos, Prev: pos})
	s.CameraTargets.Set(id, &component.CameraTarget{Target: target})
	return id
}

// BulletSpec describes a bullet leaving a muzzle.
type BulletSpec struct {
	Pos      geom.Vec2
	Half     geom.Vec2
	Velocity geom.Vec2
	Damage   float64
	Lifetime float64
	Owner    ecs.EntityID
}

// AttachBullet gives id the components of a flying bullet. It is the build
// step of a queued spawn.
func (s *State) AttachBullet(id ecs.EntityID, b BulletSpec) {
	s.Transforms.Set(id, &component.Transform{Pos: b.Pos, Prev: b.Pos, Depth: 2})
	s.Bullets.Set(id, &component.BulletState{
		Velocity: b.Velocity,
		Lifetime: b.Lifetime,
		Damage:   b.Damage,
		Owner:    b.Owner,
	})
	s.Bounds.Set(id, &component.CollisionBounds{Half: b.Half})
	flying := s.Anim.Get(anim.TrackBulletFlying)
	s.Tracks.Set(id, &component.AnimationTrack{Track: anim.TrackBulletFlying, Loop: flying.Loop})
}

// Box returns the world-space AABB of id, if it has bounds.
func (s *State) Box(id ecs.EntityID) (geom.AABB, bool) {
	tr, ok := s.Transforms.Get(id)
	if !ok {
		return geom.AABB{}, false
	}
	b, ok := s.Bounds.Get(id)
	if !ok {
		return geom.AABB{}, false
	}
	return geom.Box(tr.Pos, b.Half), true
}
