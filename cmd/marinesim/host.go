package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/config"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/input"
	"github.com/marines/sim/internal/sim"
)

var (
	colBackground = color.RGBA{R: 18, G: 20, B: 26, A: 255}
	colTerrain    = color.RGBA{R: 70, G: 74, B: 82, A: 255}
	colEdge       = color.RGBA{R: 110, G: 116, B: 128, A: 255}
	colBullet     = color.RGBA{R: 255, G: 220, B: 120, A: 255}
	colImpact     = color.RGBA{R: 255, G: 140, B: 60, A: 255}
)

// trackColors stands in for a sprite sheet: one tint per marine track.
var trackColors = map[anim.TrackID]color.RGBA{
	anim.TrackIdle:      {R: 90, G: 140, B: 90, A: 255},
	anim.TrackWalking:   {R: 90, G: 170, B: 110, A: 255},
	anim.TrackAttacking: {R: 200, G: 90, B: 80, A: 255},
	anim.TrackFalling:   {R: 90, G: 120, B: 190, A: 255},
}

// host is the ebiten.Game that feeds the simulation and draws its output.
type host struct {
	sim      *sim.Simulation
	cfg      *config.Config
	bindings map[input.Action][]ebiten.Key
	log      *zap.Logger

	last      time.Time
	paused    bool
	showDebug bool
}

func newHost(s *sim.Simulation, cfg *config.Config, bindings map[input.Action][]ebiten.Key, log *zap.Logger) *host {
	return &host{sim: s, cfg: cfg, bindings: bindings, log: log, showDebug: true}
}

// parseBindings maps action names to ebiten keys.
func parseBindings(raw map[string][]string) (map[input.Action][]ebiten.Key, error) {
	out := make(map[input.Action][]ebiten.Key, len(raw))
	for name, keys := range raw {
		a, err := input.ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(k)); err != nil {
				return nil, fmt.Errorf("action %s: %w", name, err)
			}
			out[a] = append(out[a], key)
		}
	}
	for _, a := range input.Actions() {
		if len(out[a]) == 0 {
			return nil, fmt.Errorf("action %s has no key", a)
		}
	}
	return out, nil
}

func (h *host) snapshot() input.Snapshot {
	var in input.Snapshot
	for a, keys := range h.bindings {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				in = in.With(a)
				break
			}
		}
	}
	return in
}

func (h *host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		h.showDebug = !h.showDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		h.paused = !h.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if err := clipboard.WriteAll(h.sim.Debug()); err != nil {
			h.log.Warn("copy debug snapshot", zap.Error(err))
		} else {
			h.log.Info("debug snapshot copied", zap.Uint64("frame", h.sim.Frame()))
		}
	}

	now := time.Now()
	if h.last.IsZero() {
		h.last = now
	}
	dt := now.Sub(h.last)
	h.last = now
	if h.paused {
		return nil
	}
	h.sim.Step(dt, h.snapshot())
	return nil
}

// toScreen maps a world point to screen pixels with the camera centred.
func (h *host) toScreen(p, cam geom.Vec2) (float32, float32) {
	scale := h.cfg.Window.Scale
	x := (p.X-cam.X)*scale + float64(h.cfg.Window.Width)/2
	y := (p.Y-cam.Y)*scale + float64(h.cfg.Window.Height)/2
	return float32(x), float32(y)
}

func (h *host) drawBox(screen *ebiten.Image, b geom.AABB, cam geom.Vec2, fill color.Color) {
	x, y := h.toScreen(b.Min(), cam)
	size := b.Size().Scale(h.cfg.Window.Scale)
	vector.FillRect(screen, x, y, float32(size.X), float32(size.Y), fill, false)
}

func (h *host) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	cam := h.sim.Camera()

	for _, r := range h.sim.Terrain() {
		h.drawBox(screen, r, cam, colTerrain)
		x, y := h.toScreen(r.Min(), cam)
		size := r.Size().Scale(h.cfg.Window.Scale)
		vector.StrokeRect(screen, x, y, float32(size.X), float32(size.Y), 1, colEdge, false)
	}

	for _, sp := range h.sim.Sprites() {
		box := geom.Box(sp.Pos, sp.Half)
		switch sp.Kind {
		case sim.KindBullet:
			c := colBullet
			if sp.Track == anim.TrackBulletImpact {
				c = colImpact
				// Impact frames grow the flash.
				box.Half = box.Half.Scale(1 + float64(sp.Frame)*0.5)
			}
			h.drawBox(screen, box, cam, c)
		default:
			c, ok := trackColors[sp.Track]
			if !ok {
				c = colEdge
			}
			// Frame index shifts brightness so playback is visible without art.
			shade := uint8(sp.Frame * 12)
			c.R, c.G, c.B = sat(c.R, shade), sat(c.G, shade), sat(c.B, shade)
			h.drawBox(screen, box, cam, c)

			// Muzzle tick on the facing side.
			tip := sp.Pos.Add(geom.V(sp.Half.X*sp.Facing.Sign(), -sp.Half.Y*0.2))
			tx, ty := h.toScreen(tip, cam)
			vector.FillRect(screen, tx-2, ty-2, 4, 4, color.White, false)
		}
	}

	if h.showDebug {
		status := h.sim.Debug()
		if h.paused {
			status += "\n[paused]"
		}
		ebitenutil.DebugPrint(screen, status+fmt.Sprintf("\nTPS %.0f  F3 overlay  F9 copy  P pause  Esc quit", ebiten.ActualTPS()))
	}
}

func (h *host) Layout(_, _ int) (int, int) {
	return h.cfg.Window.Width, h.cfg.Window.Height
}

func sat(v, add uint8) uint8 {
	if int(v)+int(add) > 255 {
		return 255
	}
	return v + add
}
