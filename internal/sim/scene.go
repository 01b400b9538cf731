package sim

import (
	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/data"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/world"
)

// spawnScene places the player, the target marines and the camera. Terrain
// is not an entity; it lives in the world's terrain index.
func (s *Simulation) spawnScene(level *data.Level) {
	s.player = s.world.AddMarine(s.marineSpec(level.Player, true))
	for _, t := range level.Targets {
		s.targets = append(s.targets, s.world.AddMarine(s.marineSpec(t, false)))
	}

	camPos := level.Player.Pos()
	if level.Camera != nil {
		camPos = level.Camera.Pos()
	}
	s.camera = s.world.AddCamera(camPos, s.player)
}

func (s *Simulation) marineSpec(sp data.SpawnDef, controlled bool) world.MarineSpec {
	facing := component.FacingRight
	if sp.Facing == "left" {
		facing = component.FacingLeft
	}
	return world.MarineSpec{
		Pos:          sp.Pos(),
		Half:         geom.V(s.cfg.Marine.HalfWidth, s.cfg.Marine.HalfHeight),
		Facing:       facing,
		MaxSpeed:     s.cfg.Marine.MaxVelocity,
		FireInterval: s.cfg.Weapon.FireInterval,
		HP:           s.cfg.Health.MaxHP,
		Controlled:   controlled,
	}
}
