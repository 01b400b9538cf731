package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for combat formulas.
// Single-goroutine access only: the bullet collision system is the only
// caller and the scheduler never runs it alongside another stage member.
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Load core helpers first, then combat formulas
	for _, sub := range []string{"core", "combat"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// NewEngineFromSource creates an engine from inline Lua source.
func NewEngineFromSource(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lua source: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// BulletDamageContext holds pre-packed data for one bullet hit.
type BulletDamageContext struct {
	BaseDamage  float64 // BulletState.Damage
	Age         float64 // seconds the bullet flew
	Lifetime    float64 // seconds it had left
	TargetHP    float64
	TargetMaxHP float64
}

// BulletDamage calls the Lua calc_bullet_damage function. Any scripting
// failure falls back to the base damage.
func (e *Engine) BulletDamage(ctx BulletDamageContext) float64 {
	fn := e.vm.GetGlobal("calc_bullet_damage")
	if fn == lua.LNil {
		e.log.Error("lua function calc_bullet_damage not found")
		return ctx.BaseDamage
	}

	t := e.vm.NewTable()
	t.RawSetString("base", lua.LNumber(ctx.BaseDamage))
	t.RawSetString("age", lua.LNumber(ctx.Age))
	t.RawSetString("lifetime", lua.LNumber(ctx.Lifetime))

	tgt := e.vm.NewTable()
	tgt.RawSetString("hp", lua.LNumber(ctx.TargetHP))
	tgt.RawSetString("max_hp", lua.LNumber(ctx.TargetMaxHP))
	t.RawSetString("target", tgt)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_bullet_damage error", zap.Error(err))
		return ctx.BaseDamage
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_bullet_damage returned non-number",
			zap.String("type", result.Type().String()))
		return ctx.BaseDamage
	}
	if n < 0 {
		return 0
	}
	return float64(n)
}
