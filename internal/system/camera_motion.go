package system

import (
	"math"
	"time"

	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/core/ecs"
	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/world"
)

// CameraMotionSystem eases each camera toward its target marine. A camera
// whose target is gone holds its position.
type CameraMotionSystem struct {
	world     *world.State
	smoothing float64
}

func NewCameraMotionSystem(ws *world.State, smoothing float64) *CameraMotionSystem {
	return &CameraMotionSystem{world: ws, smoothing: smoothing}
}

func (s *CameraMotionSystem) Descriptor() coresys.Descriptor {
	return coresys.Descriptor{
		Name:   NameCameraMotion,
		After:  []string{NameMarineCollision},
		Reads:  []ecs.StoreID{s.world.CameraTargets.ID()},
		Writes: []ecs.StoreID{s.world.Transforms.ID()},
	}
}

func (s *CameraMotionSystem) Update(d time.Duration) {
	// Capped at 1 so a long frame lands on the target instead of overshooting.
	k := math.Min(1, s.smoothing*d.Seconds())
	ecs.Each2(s.world.CameraTargets, s.world.Transforms, func(_ ecs.EntityID, ct *component.CameraTarget, cam *component.Transform) {
		if !s.world.ECS.Alive(ct.Target) {
			return
		}
		target, ok := s.world.Transforms.Get(ct.Target)
		if !ok {
			return
		}
		cam.Prev = cam.Pos
		cam.Pos = cam.Pos.Add(target.Pos.Sub(cam.Pos).Scale(k))
	})
}
