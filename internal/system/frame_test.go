package system

import (
	"reflect"
	"testing"

	coresys "github.com/marines/sim/internal/core/system"
	"github.com/marines/sim/internal/geom"
	"github.com/marines/sim/internal/input"
)

func TestFrameGraph_Stages(t *testing.T) {
	r := newRig(t)
	want := [][]string{
		{NameMarineAcceleration},
		{NameAttack},
		{NameBulletCollision},
		{NameMarineCollision, NameBulletAnimation},
		{NameBulletImpactAnimation},
		{NameMarineAnimation, NameCameraMotion},
	}
	if got := r.sched.Stages(); !reflect.DeepEqual(got, want) {
		t.Fatalf("stages = %v, want %v", got, want)
	}
}

func TestFrameGraph_ParallelMatchesSerial(t *testing.T) {
	script := []input.Snapshot{
		input.Of(input.MoveRight),
		input.Of(input.MoveRight, input.Fire),
		input.Of(input.Jump),
		0,
		input.Of(input.MoveLeft, input.Fire),
	}
	run := func(r *rig) []geom.Vec2 {
		player := r.marine(0, 0, true)
		target := r.marine(8, 0, false)
		r.ws.AddCamera(geom.V(0, -2), player)
		var out []geom.Vec2
		for i := 0; i < 300; i++ {
			r.step(script[(i/20)%len(script)])
			out = append(out, r.transform(player).Pos)
			if r.ws.ECS.Alive(target) {
				out = append(out, r.transform(target).Pos)
			}
			out = append(out, geom.V(float64(len(r.bullets())), float64(len(r.hook.hits))))
		}
		return out
	}

	serial := newRig(t, floor, platform)
	parallel := newRig(t, floor, platform)
	parallel.sched = coresys.NewScheduler(parallel.ws.ECS, coresys.WithParallel(4))
	for _, s := range frameSystems(parallel) {
		parallel.sched.Register(s)
	}
	if err := parallel.sched.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}

	a, b := run(serial), run(parallel)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("parallel stages diverged from the serial run")
	}
}
