package system

import (
	"testing"
	"time"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/config"
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/core/event"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/input"
	"github.com/marines/sim/internal/terrain"
	"github.com/marines/sim/internal/world"
)

const frameDT = time.Second / 60

// floor is a wide slab whose top surface is y = 0.
var floor = geom.FromRect(-50, 0, 100, 1)

type recordingHook struct {
	hits []Hit
}

func (h *recordingHook) ApplyBulletDamage(hit Hit) float64 {
	h.hits = append(h.hits, hit)
	return hit.Damage
}

// rig runs the full frame graph over a small hand-built level.
type rig struct {
	t     *testing.T
	cfg   *config.Config
	ws    *world.State
	sched *coresys.Scheduler
	hook  *recordingHook
	frame int
}

func newRig(t *testing.T, rects ...geom.AABB) *rig {
	t.Helper()
	cfg := config.Defaults()
	ws := world.NewState(terrain.New(rects), anim.DefaultTable(), event.NewBus())
	hook := &recordingHook{}

	r := &rig{t: t, cfg: cfg, ws: ws, hook: hook}
	r.sched = coresys.NewScheduler(ws.ECS)
	for _, s := range frameSystems(r) {
		r.sched.Register(s)
	}
	if err := r.sched.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

func frameSystems(r *rig) []coresys.System {
	return []coresys.System{
		NewMarineAccelerationSystem(r.ws, r.cfg.Marine),
		NewAttackSystem(r.ws, r.cfg.Weapon),
		NewBulletCollisionSystem(r.ws, r.hook, nil),
		NewMarineCollisionSystem(r.ws),
		NewBulletAnimationSystem(r.ws),
		NewBulletImpactAnimationSystem(r.ws),
		NewMarineAnimationSystem(r.ws),
		NewCameraMotionSystem(r.ws, r.cfg.Camera.Smoothing),
	}
}

// marine places a marine with its feet at groundY.
func (r *rig) marine(x, groundY float64, controlled bool) ecs.EntityID {
	half := geom.V(r.cfg.Marine.HalfWidth, r.cfg.Marine.HalfHeight)
	return r.ws.AddMarine(world.MarineSpec{
		Pos:          geom.V(x, groundY-half.Y),
		Half:         half,
		Facing:       component.FacingRight,
		MaxSpeed:     r.cfg.Marine.MaxVelocity,
		FireInterval: r.cfg.Weapon.FireInterval,
		HP:           r.cfg.Health.MaxHP,
		Controlled:   controlled,
	})
}

func (r *rig) bullet(pos geom.Vec2, vx float64, owner ecs.EntityID) ecs.EntityID {
	id := r.ws.ECS.CreateEntity()
	r.ws.AttachBullet(id, world.BulletSpec{
		Pos:      pos,
		Half:     geom.V(r.cfg.Weapon.BulletHalfWidth, r.cfg.Weapon.BulletHalfHeight),
		Velocity: geom.V(vx, 0),
		Damage:   r.cfg.Weapon.BulletDamage,
		Lifetime: r.cfg.Weapon.BulletLifetime,
		Owner:    owner,
	})
	return id
}

func (r *rig) step(in input.Snapshot) {
	r.ws.Bus.SwapBuffers()
	r.ws.Bus.DispatchAll()
	r.ws.SetInput(in)
	r.sched.Tick(frameDT)
	r.frame++
}

func (r *rig) steps(n int, in input.Snapshot) {
	for i := 0; i < n; i++ {
		r.step(in)
	}
}

func (r *rig) transform(id ecs.EntityID) *component.Transform {
	r.t.Helper()
	tr, ok := r.ws.Transforms.Get(id)
	if !ok {
		r.t.Fatalf("entity %d has no transform", id.Index())
	}
	return tr
}

func (r *rig) velocity(id ecs.EntityID) *component.Velocity {
	r.t.Helper()
	v, ok := r.ws.Velocities.Get(id)
	if !ok {
		r.t.Fatalf("entity %d has no velocity", id.Index())
	}
	return v
}

func (r *rig) state(id ecs.EntityID) *component.MarineState {
	r.t.Helper()
	m, ok := r.ws.Marines.Get(id)
	if !ok {
		r.t.Fatalf("entity %d is not a marine", id.Index())
	}
	return m
}

func (r *rig) track(id ecs.EntityID) *component.AnimationTrack {
	r.t.Helper()
	tr, ok := r.ws.Tracks.Get(id)
	if !ok {
		r.t.Fatalf("entity %d has no animation track", id.Index())
	}
	return tr
}

func (r *rig) bullets() []ecs.EntityID {
	var out []ecs.EntityID
	r.ws.Bullets.Each(func(id ecs.EntityID, _ *component.BulletState) {
		out = append(out, id)
	})
	return out
}
