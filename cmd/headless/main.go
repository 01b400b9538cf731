package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/profile"

	"github.com/marines/sim/internal/config"
	"github.com/marines/sim/internal/core/event"
	"github.com/marines/sim/internal/data"
	"github.com/marines/sim/internal/input"
	"github.com/marines/sim/internal/logging"
	"github.com/marines/sim/internal/scripting"
	"github.com/marines/sim/internal/sim"
)

// segment holds one input snapshot for a number of frames.
type segment struct {
	in     input.Snapshot
	frames int
}

// parseScript reads "right:60,right+fire:20,none:30" into segments.
func parseScript(s string) ([]segment, error) {
	var out []segment
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		actions, count, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("segment %q: want actions:frames", part)
		}
		n, err := strconv.Atoi(count)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("segment %q: frames must be a positive integer", part)
		}
		var in input.Snapshot
		if actions != "none" {
			for _, name := range strings.Split(actions, "+") {
				a, err := parseActionAlias(name)
				if err != nil {
					return nil, fmt.Errorf("segment %q: %w", part, err)
				}
				in = in.With(a)
			}
		}
		out = append(out, segment{in: in, frames: n})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty input script")
	}
	return out, nil
}

func parseActionAlias(name string) (input.Action, error) {
	switch name {
	case "left":
		return input.MoveLeft, nil
	case "right":
		return input.MoveRight, nil
	}
	return input.ParseAction(name)
}

// report collects what happened during a run.
type report struct {
	Frames    int
	Fired     int
	Hits      int
	Terrain   int
	Expired   int
	Kills     int
	Landings  int
	Changes   int
	Damage    float64
	StepTotal time.Duration
	StepMax   time.Duration
}

func runScript(s *sim.Simulation, script []segment, dt time.Duration) report {
	var r report
	bus := s.Bus()
	event.Subscribe(bus, func(event.BulletFired) { r.Fired++ })
	event.Subscribe(bus, func(e event.BulletHit) {
		if e.Terrain {
			r.Terrain++
			return
		}
		r.Hits++
		r.Damage += e.Damage
	})
	event.Subscribe(bus, func(event.BulletExpired) { r.Expired++ })
	event.Subscribe(bus, func(event.MarineKilled) { r.Kills++ })
	event.Subscribe(bus, func(event.MarineLanded) { r.Landings++ })
	event.Subscribe(bus, func(event.TrackChanged) { r.Changes++ })

	for _, seg := range script {
		for i := 0; i < seg.frames; i++ {
			start := time.Now()
			s.Step(dt, seg.in)
			took := time.Since(start)
			r.StepTotal += took
			if took > r.StepMax {
				r.StepMax = took
			}
			r.Frames++
		}
	}
	// One empty frame delivers the last frame's events.
	s.Step(0, 0)
	return r
}

func printReport(w io.Writer, s *sim.Simulation, r report) {
	fmt.Fprintf(w, "=== Headless Marine Report ===\n")
	fmt.Fprintf(w, "frames=%d stages=%v\n\n", r.Frames, s.Stages())
	fmt.Fprintf(w, "bullets fired    %d\n", r.Fired)
	fmt.Fprintf(w, "  marine hits    %d (damage %.1f)\n", r.Hits, r.Damage)
	fmt.Fprintf(w, "  terrain hits   %d\n", r.Terrain)
	fmt.Fprintf(w, "  expired        %d\n", r.Expired)
	fmt.Fprintf(w, "kills            %d\n", r.Kills)
	fmt.Fprintf(w, "landings         %d\n", r.Landings)
	fmt.Fprintf(w, "track changes    %d\n", r.Changes)
	fmt.Fprintf(w, "player alive     %t\n", s.PlayerAlive())
	if r.Frames > 0 {
		fmt.Fprintf(w, "step avg %v max %v\n", r.StepTotal/time.Duration(r.Frames), r.StepMax)
	}
	fmt.Fprintf(w, "\n%s\n", s.Debug())
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		cfgPath    string
		scriptArg  string
		profileDir string
		parallel   bool
		verbose    bool
	)
	flag.StringVar(&cfgPath, "config", "config/sim.toml", "simulation config file")
	flag.StringVar(&scriptArg, "script", "right:60,right+fire:30,jump:20,none:60,left+fire:45", "input script: actions:frames, comma separated")
	flag.StringVar(&profileDir, "cpuprofile", "", "write a CPU profile into this directory")
	flag.BoolVar(&parallel, "parallel", false, "run disjoint systems concurrently")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	if p := os.Getenv("MARINESIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if parallel {
		cfg.Sim.Parallel = true
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	script, err := parseScript(scriptArg)
	if err != nil {
		return err
	}
	lvl, err := data.LoadLevel(cfg.Paths.Level)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	tracks, err := data.LoadTrackTable(cfg.Paths.Tracks)
	if err != nil {
		return fmt.Errorf("load tracks: %w", err)
	}
	luaEngine, err := scripting.NewEngine(cfg.Paths.Scripts, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()

	s, err := sim.New(cfg, lvl, tracks, log, sim.WithDamageFormula(luaEngine))
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	if profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.NoShutdownHook).Stop()
	}
	r := runScript(s, script, cfg.Sim.TickRate)
	printReport(os.Stdout, s, r)
	return nil
}
