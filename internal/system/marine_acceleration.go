package system

import (
	"math"
	"time"

	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/config"
	"github.com/marines/sim/internal/core/ecs"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/input"
	"github.com/marines/sim/internal/world"
)

// MarineAccelerationSystem turns the input snapshot into marine motion:
// horizontal acceleration, friction, gravity and jumps, then integrates
// velocity and position. Only Controlled marines read input.
type MarineAccelerationSystem struct {
	world *world.State
	cfg   config.MarineConfig
}

func NewMarineAccelerationSystem(ws *world.State, cfg config.MarineConfig) *MarineAccelerationSystem {
	return &MarineAccelerationSystem{world: ws, cfg: cfg}
}

func (s *MarineAccelerationSystem) Descriptor() coresys.Descriptor {
	return coresys.Descriptor{
		Name:   NameMarineAcceleration,
		Reads:  []ecs.StoreID{s.world.Controlled.ID()},
		Writes: []ecs.StoreID{s.world.Transforms.ID(), s.world.Velocities.ID(), s.world.Marines.ID()},
	}
}

func (s *MarineAccelerationSystem) Update(d time.Duration) {
	dt := d.Seconds()
	in := s.world.Input()

	ecs.Each3(s.world.Marines, s.world.Velocities, s.world.Transforms,
		func(id ecs.EntityID, m *component.MarineState, v *component.Velocity, tr *component.Transform) {
			var dir float64
			jump := false
			if s.world.Controlled.Has(id) {
				dir = in.Horizontal()
				jump = in.Has(input.Jump)
			}

			v.Accel = geom.V(dir*s.cfg.Acceleration, s.cfg.Gravity)
			if jump && m.Grounded {
				v.Linear.Y = -s.cfg.JumpSpeed
				m.Grounded = false
			}
			v.Linear = v.Linear.Add(v.Accel.Scale(dt))

			if dir == 0 {
				v.Linear.X *= math.Max(0, 1-s.cfg.Friction*dt)
				if math.Abs(v.Linear.X) < s.cfg.StopEpsilon {
					v.Linear.X = 0
				}
			}
			limit := s.cfg.MaxVelocity
			if v.MaxSpeed > 0 && v.MaxSpeed < limit {
				limit = v.MaxSpeed
			}
			v.Linear.X = geom.Clamp(v.Linear.X, -limit, limit)
			if v.Linear.Y > s.cfg.TerminalVelocity {
				v.Linear.Y = s.cfg.TerminalVelocity
			}

			switch geom.Sign(v.Linear.X) {
			case 1:
				m.Facing = component.FacingRight
			case -1:
				m.Facing = component.FacingLeft
			}

			tr.Prev = tr.Pos
			tr.Pos = tr.Pos.Add(v.Linear.Scale(dt))
		})
}
