package system

import "github.com/marines/sim/internal/core/ecs"

// Hit describes one bullet striking a marine.
type Hit struct {
	Bullet   ecs.EntityID
	Owner    ecs.EntityID
	Target   ecs.EntityID
	Damage   float64 // BulletState.Damage
	Age      float64
	Lifetime float64
}

// DamageHook applies combat effects for bullet hits. The collision system
// calls it once per hit and does not own the outcome; it returns the damage
// actually dealt. Hitting a marine that is already dead must be a no-op.
type DamageHook interface {
	ApplyBulletDamage(h Hit) float64
}

// NopDamage ignores hits.
type NopDamage struct{}

func (NopDamage) ApplyBulletDamage(Hit) float64 { return 0 }
