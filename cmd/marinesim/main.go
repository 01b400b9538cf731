package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/marines/sim/internal/config"
	"github.com/marines/sim/internal/core/event"
	"github.com/marines/sim/internal/data"
	"github.com/marines/sim/internal/logging"
	"github.com/marines/sim/internal/scripting"
	"github.com/marines/sim/internal/sim"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/sim.toml"
	if p := os.Getenv("MARINESIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Level and animation data
	level, err := data.LoadLevel(cfg.Paths.Level)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	tracks, err := data.LoadTrackTable(cfg.Paths.Tracks)
	if err != nil {
		return fmt.Errorf("load tracks: %w", err)
	}
	log.Info("data loaded",
		zap.String("level", level.Name),
		zap.Int("terrain", len(level.Terrain)),
		zap.Int("targets", len(level.Targets)),
		zap.Int("tracks", tracks.Count()),
	)

	// 4. Lua combat formulas
	luaEngine, err := scripting.NewEngine(cfg.Paths.Scripts, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	// 5. Simulation
	s, err := sim.New(cfg, level, tracks, log, sim.WithDamageFormula(luaEngine))
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}
	subscribeEventLog(s.Bus(), log)

	bindings, err := parseBindings(cfg.Bindings)
	if err != nil {
		return fmt.Errorf("bindings: %w", err)
	}

	// 6. Window
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Sim.TickRate > 0 {
		ebiten.SetTPS(int(time.Second / cfg.Sim.TickRate))
	}

	h := newHost(s, cfg, bindings, log)
	if err := ebiten.RunGame(h); err != nil && err != ebiten.Termination {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("bye", zap.Uint64("frames", s.Frame()))
	return nil
}

// subscribeEventLog mirrors simulation events into the log.
func subscribeEventLog(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.BulletFired) {
		log.Debug("bullet fired", zap.Uint32("bullet", e.Bullet.Index()), zap.Float64("x", e.Position.X))
	})
	event.Subscribe(bus, func(e event.BulletHit) {
		if e.Terrain {
			log.Debug("bullet hit terrain", zap.Uint32("bullet", e.Bullet.Index()))
			return
		}
		log.Info("bullet hit marine",
			zap.Uint32("target", e.Target.Index()),
			zap.Float64("damage", e.Damage))
	})
	event.Subscribe(bus, func(e event.MarineKilled) {
		log.Info("marine down", zap.Uint32("marine", e.Marine.Index()))
	})
	event.Subscribe(bus, func(e event.MarineLanded) {
		log.Debug("landed", zap.Uint32("marine", e.Marine.Index()), zap.Float64("y", e.Y))
	})
}
