package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marines/sim/internal/geom"
)

// RectDef is one static terrain rectangle, top-left corner plus size.
type RectDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// AABB converts the rectangle to the simulation's box type.
func (r RectDef) AABB() geom.AABB {
	return geom.FromRect(r.X, r.Y, r.W, r.H)
}

// SpawnDef places a marine by the centre of its collision box.
type SpawnDef struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Facing string  `yaml:"facing"` // "left" or "right" (default)
}

func (s SpawnDef) Pos() geom.Vec2 { return geom.V(s.X, s.Y) }

// Level is the static scene loaded once at startup: terrain, the player's
// spawn, target marines and where the camera starts.
type Level struct {
	Name    string     `yaml:"name"`
	Terrain []RectDef  `yaml:"terrain"`
	Player  SpawnDef   `yaml:"player"`
	Targets []SpawnDef `yaml:"targets"`
	Camera  *SpawnDef  `yaml:"camera"`
}

// LoadLevel reads and validates a level file.
func LoadLevel(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	var lvl Level
	if err := yaml.Unmarshal(raw, &lvl); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return &lvl, nil
}

// Validate rejects levels the simulation cannot start from.
func (l *Level) Validate() error {
	if len(l.Terrain) == 0 {
		return errors.New("no terrain")
	}
	for i, r := range l.Terrain {
		if r.W <= 0 || r.H <= 0 {
			return fmt.Errorf("terrain[%d]: size must be positive, got %vx%v", i, r.W, r.H)
		}
	}
	spawns := append([]SpawnDef{l.Player}, l.Targets...)
	for i, s := range spawns {
		if s.Facing != "" && s.Facing != "left" && s.Facing != "right" {
			return fmt.Errorf("spawn[%d]: facing must be left or right, got %q", i, s.Facing)
		}
	}
	return nil
}
