package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/marines/sim/internal/input"
	"github.com/marines/sim/internal/sim"
)

func TestParseScript(t *testing.T) {
	segs, err := parseScript("right:60, right+fire:20,none:5,jump+left:3")
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	want := []segment{
		{input.Of(input.MoveRight), 60},
		{input.Of(input.MoveRight, input.Fire), 20},
		{0, 5},
		{input.Of(input.Jump, input.MoveLeft), 3},
	}
	if len(segs) != len(want) {
		t.Fatalf("segments = %+v", segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Fatalf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestParseScript_Errors(t *testing.T) {
	for _, s := range []string{"", "right", "right:0", "right:x", "dance:3"} {
		if _, err := parseScript(s); err == nil {
			t.Fatalf("parseScript(%q) should fail", s)
		}
	}
}

func TestRunScript_Report(t *testing.T) {
	ts, err := sim.NewTestSim(sim.WithTarget(8, 0, "left"))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	script, err := parseScript("fire:1,none:60")
	if err != nil {
		t.Fatal(err)
	}

	r := runScript(ts.Simulation, script, ts.DT)
	if r.Frames != 61 {
		t.Fatalf("frames = %d, want 61", r.Frames)
	}
	if r.Fired != 1 || r.Hits != 1 {
		t.Fatalf("fired %d hits %d, want 1 and 1", r.Fired, r.Hits)
	}
	if r.Damage != ts.Config().Weapon.BulletDamage {
		t.Fatalf("damage = %v", r.Damage)
	}

	var buf bytes.Buffer
	printReport(&buf, ts.Simulation, r)
	out := buf.String()
	for _, want := range []string{"Headless Marine Report", "bullets fired    1", "marine hits    1", "player alive     true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}
