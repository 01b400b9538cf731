package system

import (
	"testing"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/component"
	"github.com/marines/sim/internal/core/event"
	"github.com/marines/sim/internal/input"
)

func TestAttack_OneBulletPerCooldown(t *testing.T) {
	r := newRig(t, floor)
	id := r.marine(0, 0, true)
	fire := input.Of(input.Fire)

	var fired []event.BulletFired
	event.Subscribe(r.ws.Bus, func(e event.BulletFired) { fired = append(fired, e) })

	r.step(fire)
	if n := len(r.bullets()); n != 1 {
		t.Fatalf("bullets after first fire = %d, want 1", n)
	}
	cd, _ := r.ws.Cooldowns.Get(id)
	if cd.Remaining != r.cfg.Weapon.FireInterval {
		t.Fatalf("cooldown = %v, want reset to %v", cd.Remaining, r.cfg.Weapon.FireInterval)
	}

	r.step(fire)
	if n := len(r.bullets()); n != 1 {
		t.Fatalf("bullets on second held frame = %d, want 1", n)
	}
	if cd.Remaining <= 0 || cd.Remaining >= r.cfg.Weapon.FireInterval {
		t.Fatalf("cooldown = %v, want counting down", cd.Remaining)
	}

	gap := 1
	for len(r.bullets()) == 1 {
		if gap > 60 {
			t.Fatal("second bullet never fired")
		}
		r.step(fire)
		gap++
	}
	minGap := int(r.cfg.Weapon.FireInterval * 60)
	if gap < minGap {
		t.Fatalf("second bullet after %d frames, want at least %d", gap, minGap)
	}
	if n := len(r.bullets()); n != 2 {
		t.Fatalf("bullets = %d, want 2", n)
	}

	r.step(0)
	if len(fired) != 2 {
		t.Fatalf("BulletFired events = %d, want 2", len(fired))
	}
	if fired[0].Owner != id {
		t.Fatalf("owner = %v, want %v", fired[0].Owner, id)
	}
}

func TestAttack_BulletLeavesMuzzleInFacingDirection(t *testing.T) {
	r := newRig(t, floor)
	id := r.marine(0, 0, true)

	r.step(input.Of(input.MoveLeft, input.Fire))
	ids := r.bullets()
	if len(ids) != 1 {
		t.Fatalf("bullets = %d, want 1", len(ids))
	}
	b, _ := r.ws.Bullets.Get(ids[0])
	if b.Velocity.X != -r.cfg.Weapon.BulletSpeed || b.Velocity.Y != 0 {
		t.Fatalf("bullet velocity = %+v, want leftward at %v", b.Velocity, r.cfg.Weapon.BulletSpeed)
	}
	if b.Owner != id || b.Spent {
		t.Fatalf("bullet state = %+v", b)
	}
	if r.transform(ids[0]).Pos.X >= r.transform(id).Pos.X {
		t.Fatal("bullet spawned behind a left-facing marine")
	}
	if got := r.track(ids[0]).Track; got != anim.TrackBulletFlying {
		t.Fatalf("bullet track = %s, want flying", got)
	}
}

func TestAttack_PoseHeldThenReleased(t *testing.T) {
	r := newRig(t, floor)
	id := r.marine(0, 0, true)

	for i := 0; i < 5; i++ {
		r.step(input.Of(input.Fire))
		if r.state(id).Combat != component.CombatAttacking {
			t.Fatalf("frame %d: not attacking while fire held", i)
		}
		if got := r.track(id).Track; got != anim.TrackAttacking {
			t.Fatalf("frame %d: track = %s, want attacking", i, got)
		}
	}

	released := 0
	for r.state(id).Combat == component.CombatAttacking {
		r.step(0)
		released++
		if released > 30 {
			t.Fatal("attack state never ended")
		}
		if r.state(id).Timer < 0 {
			t.Fatalf("attack timer went negative: %v", r.state(id).Timer)
		}
	}
	want := int(r.cfg.Weapon.AttackDuration * 60)
	if released < want {
		t.Fatalf("attack pose lasted %d frames after release, want >= %d", released, want)
	}
	if got := r.track(id).Track; got != anim.TrackIdle {
		t.Fatalf("track after attack = %s, want idle", got)
	}
}

func TestAttack_CooldownNeverNegative(t *testing.T) {
	r := newRig(t, floor)
	id := r.marine(0, 0, true)
	r.step(input.Of(input.Fire))

	cd, _ := r.ws.Cooldowns.Get(id)
	for i := 0; i < 60; i++ {
		r.step(0)
		if cd.Remaining < 0 {
			t.Fatalf("frame %d: cooldown = %v", i, cd.Remaining)
		}
	}
	if cd.Remaining != 0 {
		t.Fatalf("cooldown after 1s = %v, want 0", cd.Remaining)
	}
}

func TestAttack_UncontrolledMarineHoldsFire(t *testing.T) {
	r := newRig(t, floor)
	r.marine(0, 0, false)
	r.steps(10, input.Of(input.Fire))
	if n := len(r.bullets()); n != 0 {
		t.Fatalf("uncontrolled marine fired %d bullets", n)
	}
}
