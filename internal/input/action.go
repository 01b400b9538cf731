// Package input defines the logical actions the host reports each frame.
// Raw key codes never reach the simulation; the host maps its bindings onto
// these actions.
package input

import (
	"fmt"
	"strings"
)

// Action is a named logical input.
type Action uint8

const (
	MoveLeft Action = iota
	MoveRight
	Jump
	Fire
	actionCount
)

var actionNames = [actionCount]string{
	MoveLeft:  "move_left",
	MoveRight: "move_right",
	Jump:      "jump",
	Fire:      "fire",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

// Actions lists every action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction resolves an action name as used in binding tables.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a, n := range actionNames {
		if n == name {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Snapshot is the set of actions active during one frame.
type Snapshot uint8

// Of builds a snapshot from the given actions.
func Of(actions ...Action) Snapshot {
	var s Snapshot
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

func (s Snapshot) Has(a Action) bool {
	return a < actionCount && s&(1<<a) != 0
}

func (s Snapshot) With(a Action) Snapshot {
	if a >= actionCount {
		return s
	}
	return s | 1<<a
}

func (s Snapshot) Without(a Action) Snapshot {
	return s &^ (1 << a)
}

// Horizontal returns -1, 0 or +1 from the move actions. Holding both
// directions cancels out.
func (s Snapshot) Horizontal() float64 {
	var h float64
	if s.Has(MoveLeft) {
		h--
	}
	if s.Has(MoveRight) {
		h++
	}
	return h
}

func (s Snapshot) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	for _, a := range Actions() {
		if s.Has(a) {
			parts = append(parts, a.String())
		}
	}
	return strings.Join(parts, "+")
}
