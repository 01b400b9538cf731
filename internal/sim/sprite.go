package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/core/ecs"
	"github.com/marines/sim/internal/geom"
)

// SpriteKind tells the renderer which sheet a sprite is drawn from.
type SpriteKind uint8

const (
	KindMarine SpriteKind = iota
	KindBullet
)

func (k SpriteKind) String() string {
	if k == KindBullet {
		return "bullet"
	}
	return "marine"
}

// Sprite is what the renderer needs to draw one entity. The mapping from
// (Track, Frame) to a sprite cell belongs to the renderer.
type Sprite struct {
	Entity ecs.EntityID
	Kind   SpriteKind
	Pos    geom.Vec2
	Half   geom.Vec2
	Depth  float64
	Track  anim.TrackID
	Frame  int
	Facing component.Facing
}

// Sprites returns every animated entity, back to front.
func (s *Simulation) Sprites() []Sprite {
	ws := s.world
	out := make([]Sprite, 0, ws.Tracks.Len())
	ws.Tracks.Each(func(id ecs.EntityID, trk *component.AnimationTrack) {
		tr, ok := ws.Transforms.Get(id)
		if !ok {
			return
		}
		sp := Sprite{
			Entity: id,
			Pos:    tr.Pos,
			Depth:  tr.Depth,
			Track:  trk.Track,
			Frame:  trk.Frame,
			Facing: component.FacingRight,
		}
		if b, ok := ws.Bounds.Get(id); ok {
			sp.Half = b.Half
		}
		switch {
		case ws.Marines.Has(id):
			m, _ := ws.Marines.Get(id)
			sp.Kind = KindMarine
			sp.Facing = m.Facing
		case ws.Bullets.Has(id):
			sp.Kind = KindBullet
			// A spent bullet keeps the Prev of its last move.
			if tr.Pos.X < tr.Prev.X {
				sp.Facing = component.FacingLeft
			}
		}
		out = append(out, sp)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth < out[j].Depth })
	return out
}

// Camera returns the camera position, or the player's when there is no
// camera entity.
func (s *Simulation) Camera() geom.Vec2 {
	if tr, ok := s.world.Transforms.Get(s.camera); ok {
		return tr.Pos
	}
	if tr, ok := s.world.Transforms.Get(s.player); ok {
		return tr.Pos
	}
	return geom.Vec2{}
}

// Debug renders a short text dump of the frame for overlays and bug reports.
func (s *Simulation) Debug() string {
	ws := s.world
	var b strings.Builder
	fmt.Fprintf(&b, "frame %d  entities %d  bullets %d\n", s.frame, s.Entities(), ws.Bullets.Len())
	if tr, ok := ws.Transforms.Get(s.player); ok {
		v, _ := ws.Velocities.Get(s.player)
		m, _ := ws.Marines.Get(s.player)
		trk, _ := ws.Tracks.Get(s.player)
		fmt.Fprintf(&b, "player pos (%.2f, %.2f) vel (%.2f, %.2f)\n", tr.Pos.X, tr.Pos.Y, v.Linear.X, v.Linear.Y)
		fmt.Fprintf(&b, "facing %s  %s  grounded %t  track %s/%d\n", m.Facing, m.Combat, m.Grounded, trk.Track, trk.Frame)
		if hp, ok := ws.Health.Get(s.player); ok {
			fmt.Fprintf(&b, "hp %.0f/%.0f\n", hp.HP, hp.Max)
		}
	} else {
		b.WriteString("player gone\n")
	}
	cam := s.Camera()
	fmt.Fprintf(&b, "camera (%.2f, %.2f)", cam.X, cam.Y)
	return b.String()
}
