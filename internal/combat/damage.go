// Package combat applies bullet hits to marine health.
package combat

import (
	"go.uber.org/zap"

	"github.com/marines/sim/internal/core/event"
	"github.com/marines/sim/internal/scripting"
	"github.com/marines/sim/internal/system"
	"github.com/marines/sim/internal/world"
)

// Formula computes the damage one hit deals. *scripting.Engine implements it
// with the Lua calc_bullet_damage function.
type Formula interface {
	BulletDamage(ctx scripting.BulletDamageContext) float64
}

// FlatFormula deals the bullet's base damage.
type FlatFormula struct{}

func (FlatFormula) BulletDamage(ctx scripting.BulletDamageContext) float64 { return ctx.BaseDamage }

// HealthHook is the simulation's damage hook: it subtracts the formula's
// result from the target's Health and queues the marine for destruction when
// it reaches zero.
type HealthHook struct {
	world   *world.State
	formula Formula
	log     *zap.Logger
}

var _ system.DamageHook = (*HealthHook)(nil)

func NewHealthHook(ws *world.State, formula Formula, log *zap.Logger) *HealthHook {
	if formula == nil {
		formula = FlatFormula{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HealthHook{world: ws, formula: formula, log: log}
}

// ApplyBulletDamage returns the damage dealt. Targets that are destroyed,
// have no Health, or are already at zero HP take nothing.
func (h *HealthHook) ApplyBulletDamage(hit system.Hit) float64 {
	if !h.world.ECS.Alive(hit.Target) {
		return 0
	}
	hp, ok := h.world.Health.Get(hit.Target)
	if !ok || hp.HP <= 0 {
		return 0
	}

	dmg := h.formula.BulletDamage(scripting.BulletDamageContext{
		BaseDamage:  hit.Damage,
		Age:         hit.Age,
		Lifetime:    hit.Lifetime,
		TargetHP:    hp.HP,
		TargetMaxHP: hp.Max,
	})
	if dmg <= 0 {
		return 0
	}
	if dmg > hp.HP {
		dmg = hp.HP
	}
	hp.HP -= dmg

	if hp.HP <= 0 {
		hp.HP = 0
		h.world.ECS.MarkForDestruction(hit.Target)
		event.Emit(h.world.Bus, event.MarineKilled{Marine: hit.Target, Killer: hit.Owner})
		h.log.Info("marine killed",
			zap.Uint32("marine", hit.Target.Index()),
			zap.Uint32("killer", hit.Owner.Index()))
	}
	return dmg
}
