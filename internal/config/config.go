package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// MarineMaxVelocity is the horizontal speed cap of a marine in units/second.
const MarineMaxVelocity = 6.0

type Config struct {
	Sim      SimConfig           `toml:"sim"`
	Marine   MarineConfig        `toml:"marine"`
	Weapon   WeaponConfig        `toml:"weapon"`
	Camera   CameraConfig        `toml:"camera"`
	Health   HealthConfig        `toml:"health"`
	Logging  LoggingConfig       `toml:"logging"`
	Paths    PathsConfig         `toml:"paths"`
	Window   WindowConfig        `toml:"window"`
	Bindings map[string][]string `toml:"bindings"` // action name → host key names
}

type SimConfig struct {
	TickRate   time.Duration `toml:"tick_rate"`    // host frame pacing
	MaxFrameDT time.Duration `toml:"max_frame_dt"` // Δt clamp after host stalls
	Parallel   bool          `toml:"parallel"`     // run disjoint systems concurrently
	Workers    int           `toml:"workers"`
}

type MarineConfig struct {
	Acceleration     float64 `toml:"acceleration"`      // units/s² while a move action is held
	MaxVelocity      float64 `toml:"max_velocity"`      // horizontal clamp
	Friction         float64 `toml:"friction"`          // 1/s decay applied with no horizontal input
	StopEpsilon      float64 `toml:"stop_epsilon"`      // |vx| below this snaps to 0 while decaying
	Gravity          float64 `toml:"gravity"`           // units/s², y-down
	JumpSpeed        float64 `toml:"jump_speed"`        // upward speed set by a grounded jump
	TerminalVelocity float64 `toml:"terminal_velocity"` // fall speed clamp
	HalfWidth        float64 `toml:"half_width"`
	HalfHeight       float64 `toml:"half_height"`
}

type WeaponConfig struct {
	FireInterval     float64 `toml:"fire_interval"`   // seconds between shots
	AttackDuration   float64 `toml:"attack_duration"` // seconds the attack pose is held
	BulletSpeed      float64 `toml:"bullet_speed"`
	BulletDamage     float64 `toml:"bullet_damage"`
	BulletLifetime   float64 `toml:"bullet_lifetime"`
	MuzzleX          float64 `toml:"muzzle_x"` // offset in front of the marine, mirrored by facing
	MuzzleY          float64 `toml:"muzzle_y"`
	BulletHalfWidth  float64 `toml:"bullet_half_width"`
	BulletHalfHeight float64 `toml:"bullet_half_height"`
}

type CameraConfig struct {
	Smoothing float64 `toml:"smoothing"` // k in cam += (target-cam)·k·Δt
}

type HealthConfig struct {
	MaxHP float64 `toml:"max_hp"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type PathsConfig struct {
	Level   string `toml:"level"`
	Tracks  string `toml:"tracks"`
	Scripts string `toml:"scripts"`
}

type WindowConfig struct {
	Title  string  `toml:"title"`
	Width  int     `toml:"width"`
	Height int     `toml:"height"`
	Scale  float64 `toml:"scale"` // pixels per world unit
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with. These are
// startup preconditions; the systems themselves assume a valid config.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0, got %v", name, v))
		}
	}

	positive("sim.tick_rate", c.Sim.TickRate.Seconds())
	positive("sim.max_frame_dt", c.Sim.MaxFrameDT.Seconds())
	nonNegative("sim.workers", float64(c.Sim.Workers))

	positive("marine.acceleration", c.Marine.Acceleration)
	positive("marine.max_velocity", c.Marine.MaxVelocity)
	if c.Marine.MaxVelocity > MarineMaxVelocity {
		errs = append(errs, fmt.Errorf("marine.max_velocity must be <= %v, got %v", MarineMaxVelocity, c.Marine.MaxVelocity))
	}
	nonNegative("marine.friction", c.Marine.Friction)
	nonNegative("marine.stop_epsilon", c.Marine.StopEpsilon)
	nonNegative("marine.gravity", c.Marine.Gravity)
	nonNegative("marine.jump_speed", c.Marine.JumpSpeed)
	positive("marine.terminal_velocity", c.Marine.TerminalVelocity)
	positive("marine.half_width", c.Marine.HalfWidth)
	positive("marine.half_height", c.Marine.HalfHeight)

	positive("weapon.fire_interval", c.Weapon.FireInterval)
	nonNegative("weapon.attack_duration", c.Weapon.AttackDuration)
	positive("weapon.bullet_speed", c.Weapon.BulletSpeed)
	nonNegative("weapon.bullet_damage", c.Weapon.BulletDamage)
	positive("weapon.bullet_lifetime", c.Weapon.BulletLifetime)
	positive("weapon.bullet_half_width", c.Weapon.BulletHalfWidth)
	positive("weapon.bullet_half_height", c.Weapon.BulletHalfHeight)

	positive("camera.smoothing", c.Camera.Smoothing)
	positive("health.max_hp", c.Health.MaxHP)

	return errors.Join(errs...)
}

// Defaults returns the built-in configuration. Load decodes the file over it,
// so a config file only needs the keys it changes.
func Defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate:   time.Second / 60,
			MaxFrameDT: 100 * time.Millisecond,
			Parallel:   false,
			Workers:    0,
		},
		Marine: MarineConfig{
			Acceleration:     24,
			MaxVelocity:      MarineMaxVelocity,
			Friction:         10,
			StopEpsilon:      0.05,
			Gravity:          30,
			JumpSpeed:        12,
			TerminalVelocity: 20,
			HalfWidth:        0.4,
			HalfHeight:       0.9,
		},
		Weapon: WeaponConfig{
			FireInterval:     0.25,
			AttackDuration:   0.3,
			BulletSpeed:      20,
			BulletDamage:     10,
			BulletLifetime:   1.5,
			MuzzleX:          0.6,
			MuzzleY:          -0.2,
			BulletHalfWidth:  0.15,
			BulletHalfHeight: 0.08,
		},
		Camera: CameraConfig{
			Smoothing: 5,
		},
		Health: HealthConfig{
			MaxHP: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Paths: PathsConfig{
			Level:   "data/levels/training.yaml",
			Tracks:  "data/tracks.yaml",
			Scripts: "scripts",
		},
		Window: WindowConfig{
			Title:  "Marines",
			Width:  1280,
			Height: 720,
			Scale:  32,
		},
		Bindings: map[string][]string{
			"move_left":  {"A", "ArrowLeft"},
			"move_right": {"D", "ArrowRight"},
			"jump":       {"W", "Space"},
			"fire":       {"J", "ControlLeft"},
		},
	}
}
