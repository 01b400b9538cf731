// Package sim assembles the frame: world state, scene, damage hook and the
// scheduled systems, and exposes one Step per host frame.
package sim

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/combat"
	"github.com/marines/sim/internal/config"
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/core/event"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/data"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/input"
	"github.com/marines/sim/internal/system"
	"github.com/marines/sim/internal/terrain"
	"github.com/marines/sim/internal/world"
)

// Option configures a Simulation.
type Option func(*options)

type options struct {
	formula combat.Formula
	hook    system.DamageHook
}

// WithDamageFormula sets the formula the health hook uses, typically the Lua
// scripting engine. The default deals the bullet's base damage.
func WithDamageFormula(f combat.Formula) Option {
	return func(o *options) { o.formula = f }
}

// WithDamageHook replaces the health hook entirely.
func WithDamageHook(h system.DamageHook) Option {
	return func(o *options) { o.hook = h }
}

// Simulation is the per-frame gameplay core.
type Simulation struct {
	cfg   *config.Config
	log   *zap.Logger
	world *world.State
	sched *coresys.Scheduler

	player  ecs.EntityID
	targets []ecs.EntityID
	camera  ecs.EntityID
	frame   uint64
}

// New builds the scene from level and validates the system graph.
func New(cfg *config.Config, level *data.Level, tracks *anim.Table, log *zap.Logger, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("level %q: %w", level.Name, err)
	}
	if tracks == nil {
		tracks = anim.DefaultTable()
	}
	if err := tracks.Validate(); err != nil {
		return nil, fmt.Errorf("tracks: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rects := make([]geom.AABB, len(level.Terrain))
	for i, r := range level.Terrain {
		rects[i] = r.AABB()
	}
	ws := world.NewState(terrain.New(rects), tracks, event.NewBus())

	s := &Simulation{cfg: cfg, log: log, world: ws}
	s.spawnScene(level)

	hook := o.hook
	if hook == nil {
		hook = combat.NewHealthHook(ws, o.formula, log)
	}

	var schedOpts []coresys.Option
	if cfg.Sim.Parallel {
		schedOpts = append(schedOpts, coresys.WithParallel(cfg.Sim.Workers))
	}
	s.sched = coresys.NewScheduler(ws.ECS, schedOpts...)
	s.sched.Register(system.NewMarineAccelerationSystem(ws, cfg.Marine))
	s.sched.Register(system.NewAttackSystem(ws, cfg.Weapon))
	s.sched.Register(system.NewBulletCollisionSystem(ws, hook, log))
	s.sched.Register(system.NewMarineCollisionSystem(ws))
	s.sched.Register(system.NewBulletAnimationSystem(ws))
	s.sched.Register(system.NewBulletImpactAnimationSystem(ws))
	s.sched.Register(system.NewMarineAnimationSystem(ws))
	s.sched.Register(system.NewCameraMotionSystem(ws, cfg.Camera.Smoothing))
	if err := s.sched.Build(); err != nil {
		return nil, fmt.Errorf("build system graph: %w", err)
	}

	log.Info("simulation ready",
		zap.String("level", level.Name),
		zap.Int("terrain", ws.Terrain.Len()),
		zap.Int("targets", len(s.targets)),
		zap.Bool("parallel", cfg.Sim.Parallel),
		zap.Any("stages", s.sched.Stages()),
	)
	return s, nil
}

// Step advances the simulation by one frame. dt is clamped to
// [0, sim.max_frame_dt] so a host stall cannot tunnel marines through
// terrain. Events emitted in the previous frame are delivered first.
func (s *Simulation) Step(dt time.Duration, in input.Snapshot) {
	if dt < 0 {
		dt = 0
	}
	if limit := s.cfg.Sim.MaxFrameDT; dt > limit {
		dt = limit
	}
	s.world.Bus.SwapBuffers()
	s.world.Bus.DispatchAll()
	s.world.SetInput(in)
	s.sched.Tick(dt)
	s.frame++
}

func (s *Simulation) State() *world.State     { return s.world }
func (s *Simulation) Bus() *event.Bus         { return s.world.Bus }
func (s *Simulation) Player() ecs.EntityID    { return s.player }
func (s *Simulation) Targets() []ecs.EntityID { return s.targets }
func (s *Simulation) Frame() uint64           { return s.frame }
func (s *Simulation) Stages() [][]string      { return s.sched.Stages() }
func (s *Simulation) Terrain() []geom.AABB    { return s.world.Terrain.Rects() }
func (s *Simulation) Config() *config.Config  { return s.cfg }
func (s *Simulation) Tracks() *anim.Table     { return s.world.Anim }
func (s *Simulation) PlayerAlive() bool       { return s.world.IsMarine(s.player) }
func (s *Simulation) Entities() int           { return s.world.ECS.Pool().Len() }
