package sim

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/config"
	"github.com/marines/sim/internal/data"
	"github.com/marines/sim/internal/input"
)

// TestSim is a headless harness for tests and the headless runner. It builds
// a level from options instead of files and steps at a fixed Δt.
type TestSim struct {
	*Simulation

	DT    time.Duration
	cfg   *config.Config
	level data.Level
	opts  []Option
}

type testOptionKind int

const (
	testOptConfig testOptionKind = iota // config tweaks, applied first
	testOptLevel                        // terrain and spawns
)

// TestOption is a builder applied to a TestSim during construction.
type TestOption struct {
	kind testOptionKind
	fn   func(*TestSim)
}

// WithConfig edits the default configuration.
func WithConfig(edit func(*config.Config)) TestOption {
	return TestOption{testOptConfig, func(ts *TestSim) { edit(ts.cfg) }}
}

// WithStep sets the fixed frame time.
func WithStep(dt time.Duration) TestOption {
	return TestOption{testOptConfig, func(ts *TestSim) { ts.DT = dt }}
}

// WithFloor adds a wide slab whose top surface is at y.
func WithFloor(y float64) TestOption {
	return WithRect(-100, y, 200, 1)
}

// WithRect adds a terrain rectangle by top-left corner and size.
func WithRect(x, y, w, h float64) TestOption {
	return TestOption{testOptLevel, func(ts *TestSim) {
		ts.level.Terrain = append(ts.level.Terrain, data.RectDef{X: x, Y: y, W: w, H: h})
	}}
}

// WithPlayer places the controlled marine with its feet at (x, feetY).
func WithPlayer(x, feetY float64) TestOption {
	return TestOption{testOptLevel, func(ts *TestSim) {
		ts.level.Player = data.SpawnDef{X: x, Y: ts.centreY(feetY)}
	}}
}

// WithTarget adds an uncontrolled marine with its feet at (x, feetY).
func WithTarget(x, feetY float64, facing string) TestOption {
	return TestOption{testOptLevel, func(ts *TestSim) {
		ts.level.Targets = append(ts.level.Targets, data.SpawnDef{X: x, Y: ts.centreY(feetY), Facing: facing})
	}}
}

// WithSimOption passes an Option through to New.
func WithSimOption(o Option) TestOption {
	return TestOption{testOptConfig, func(ts *TestSim) { ts.opts = append(ts.opts, o) }}
}

// NewTestSim constructs a TestSim in two passes: configuration, then level.
// Without terrain options it gets a floor at y = 0 and the player stands on
// it at x = 0.
func NewTestSim(opts ...TestOption) (*TestSim, error) {
	ts := &TestSim{
		DT:    time.Second / 60,
		cfg:   config.Defaults(),
		level: data.Level{Name: "test"},
	}
	for _, o := range opts {
		if o.kind == testOptConfig {
			o.fn(ts)
		}
	}
	ts.level.Player = data.SpawnDef{X: 0, Y: ts.centreY(0)}
	for _, o := range opts {
		if o.kind == testOptLevel {
			o.fn(ts)
		}
	}
	if len(ts.level.Terrain) == 0 {
		WithFloor(0).fn(ts)
	}

	s, err := New(ts.cfg, &ts.level, anim.DefaultTable(), zap.NewNop(), ts.opts...)
	if err != nil {
		return nil, fmt.Errorf("test sim: %w", err)
	}
	ts.Simulation = s
	return ts, nil
}

func (ts *TestSim) centreY(feetY float64) float64 {
	return feetY - ts.cfg.Marine.HalfHeight
}

// Run steps n frames with the same input.
func (ts *TestSim) Run(n int, in input.Snapshot) {
	for i := 0; i < n; i++ {
		ts.Step(ts.DT, in)
	}
}

// RunFor steps for at least d of simulated time.
func (ts *TestSim) RunFor(d time.Duration, in input.Snapshot) {
	ts.Run(int((d+ts.DT-1)/ts.DT), in)
}

// PlayerView is a snapshot of the player's components.
type PlayerView struct {
	Transform component.Transform
	Velocity  component.Velocity
	State     component.MarineState
	Track     component.AnimationTrack
	Cooldown  component.AttackCooldown
}

// PlayerView copies the player's components; ok is false once it is gone.
func (ts *TestSim) PlayerView() (PlayerView, bool) {
	ws := ts.State()
	id := ts.Player()
	tr, ok := ws.Transforms.Get(id)
	if !ok {
		return PlayerView{}, false
	}
	v, _ := ws.Velocities.Get(id)
	m, _ := ws.Marines.Get(id)
	trk, _ := ws.Tracks.Get(id)
	cd, _ := ws.Cooldowns.Get(id)
	return PlayerView{Transform: *tr, Velocity: *v, State: *m, Track: *trk, Cooldown: *cd}, true
}

// BulletCount returns the number of live bullet entities.
func (ts *TestSim) BulletCount() int {
	return ts.State().Bullets.Len()
}
