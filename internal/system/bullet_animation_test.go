package system

import (
	"testing"

	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/geom"
)

func TestBulletAnimation_FlyingLoops(t *testing.T) {
	r := newRig(t)
	id := r.bullet(geom.V(0, -10), 1, 0)
	flying := r.ws.Anim.Get(anim.TrackBulletFlying)

	seen := make(map[int]bool)
	wrapped := false
	prev := r.track(id).Frame
	for i := 0; i < 40; i++ {
		r.step(0)
		trk := r.track(id)
		if trk.Track != anim.TrackBulletFlying {
			t.Fatalf("tick %d: track = %s, want flying", i, trk.Track)
		}
		if trk.Frame < 0 || trk.Frame >= flying.Frames {
			t.Fatalf("tick %d: frame %d out of range", i, trk.Frame)
		}
		if trk.Finished {
			t.Fatalf("tick %d: looping track reported finished", i)
		}
		if trk.Frame < prev {
			wrapped = true
		}
		prev = trk.Frame
		seen[trk.Frame] = true
	}
	if len(seen) != flying.Frames {
		t.Fatalf("frames shown = %v, want all %d", seen, flying.Frames)
	}
	if !wrapped {
		t.Fatal("flying track never wrapped")
	}
}

func TestBulletAnimation_LeavesSpentBulletsAlone(t *testing.T) {
	r := newRig(t)
	id := r.bullet(geom.V(0, -10), 1, 0)
	b, _ := r.ws.Bullets.Get(id)
	b.Spent = true
	trk := r.track(id)
	setTrack(trk, r.ws.Anim, anim.TrackBulletImpact)

	r.step(0)
	if trk := r.track(id); trk.Track != anim.TrackBulletImpact {
		t.Fatalf("track = %s, want impact", trk.Track)
	}
}
