package input

import "testing"

func TestSnapshot_HasWith(t *testing.T) {
	s := Of(MoveRight, Fire)
	if !s.Has(MoveRight) || !s.Has(Fire) || s.Has(Jump) || s.Has(MoveLeft) {
		t.Fatalf("unexpected membership for %v", s)
	}
	if s.Without(Fire).Has(Fire) {
		t.Fatal("Without did not clear Fire")
	}
	if s.String() != "move_right+fire" {
		t.Fatalf("String = %q", s.String())
	}
	if Snapshot(0).String() != "none" {
		t.Fatal("empty snapshot should print none")
	}
}

func TestSnapshot_Horizontal(t *testing.T) {
	cases := []struct {
		s    Snapshot
		want float64
	}{
		{Of(), 0},
		{Of(MoveLeft), -1},
		{Of(MoveRight), 1},
		{Of(MoveLeft, MoveRight), 0},
		{Of(Fire, Jump), 0},
	}
	for _, tc := range cases {
		if got := tc.s.Horizontal(); got != tc.want {
			t.Errorf("%v.Horizontal() = %v, want %v", tc.s, got, tc.want)
		}
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions() {
		got, err := ParseAction(a.String())
		if err != nil || got != a {
			t.Fatalf("ParseAction(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseAction("crouch"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}
