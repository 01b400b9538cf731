package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const falloffScript = `
function calc_bullet_damage(ctx)
  local dmg = ctx.base
  if ctx.age > 1.0 then
    dmg = dmg * 0.5
  end
  if dmg > ctx.target.hp then
    dmg = ctx.target.hp
  end
  return dmg
end
`

func TestBulletDamage_Script(t *testing.T) {
	e, err := NewEngineFromSource(falloffScript, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngineFromSource: %v", err)
	}
	defer e.Close()

	cases := []struct {
		name string
		ctx  BulletDamageContext
		want float64
	}{
		{"fresh bullet", BulletDamageContext{BaseDamage: 10, Age: 0.2, TargetHP: 30, TargetMaxHP: 30}, 10},
		{"late bullet", BulletDamageContext{BaseDamage: 10, Age: 1.2, TargetHP: 30, TargetMaxHP: 30}, 5},
		{"capped by hp", BulletDamageContext{BaseDamage: 10, Age: 0.2, TargetHP: 4, TargetMaxHP: 30}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.BulletDamage(tc.ctx); got != tc.want {
				t.Fatalf("BulletDamage = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBulletDamage_FallbackOnMissingFunction(t *testing.T) {
	e, err := NewEngineFromSource("x = 1", zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngineFromSource: %v", err)
	}
	defer e.Close()
	if got := e.BulletDamage(BulletDamageContext{BaseDamage: 7}); got != 7 {
		t.Fatalf("fallback = %v, want 7", got)
	}
}

func TestBulletDamage_FallbackOnRuntimeError(t *testing.T) {
	e, err := NewEngineFromSource(`function calc_bullet_damage(ctx) return ctx.nope.field end`, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngineFromSource: %v", err)
	}
	defer e.Close()
	if got := e.BulletDamage(BulletDamageContext{BaseDamage: 3}); got != 3 {
		t.Fatalf("fallback = %v, want 3", got)
	}
}

func TestBulletDamage_NonNumberResult(t *testing.T) {
	e, err := NewEngineFromSource(`function calc_bullet_damage(ctx) return "lots" end`, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngineFromSource: %v", err)
	}
	defer e.Close()
	if got := e.BulletDamage(BulletDamageContext{BaseDamage: 9}); got != 9 {
		t.Fatalf("fallback = %v, want 9", got)
	}
}

func TestNewEngine_LoadsCombatDir(t *testing.T) {
	dir := t.TempDir()
	combat := filepath.Join(dir, "combat")
	if err := os.MkdirAll(combat, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(combat, "bullet.lua"), []byte(falloffScript), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()
	if got := e.BulletDamage(BulletDamageContext{BaseDamage: 8, Age: 2, TargetHP: 30}); got != 4 {
		t.Fatalf("BulletDamage = %v, want 4", got)
	}
}

func TestNewEngine_SyntaxError(t *testing.T) {
	dir := t.TempDir()
	combat := filepath.Join(dir, "combat")
	if err := os.MkdirAll(combat, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(combat, "broken.lua"), []byte("function ("), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("expected syntax error to fail engine creation")
	}
}
