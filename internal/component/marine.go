package component

// Facing is the horizontal direction a marine looks: -1 left, +1 right.
type Facing int8

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// Sign returns the facing as a float multiplier.
func (f Facing) Sign() float64 {
	if f == FacingLeft {
		return -1
	}
	return 1
}

func (f Facing) String() string {
	if f == FacingLeft {
		return "left"
	}
	return "right"
}

// CombatState tags what a marine is doing with its weapon.
type CombatState uint8

const (
	CombatLocomotion CombatState = iota
	CombatAttacking
)

func (c CombatState) String() string {
	if c == CombatAttacking {
		return "attacking"
	}
	return "locomotion"
}

// MarineState is present on every marine; its presence is what makes an
// entity a marine.
type MarineState struct {
	Facing   Facing
	Combat   CombatState
	Timer    float64 // seconds left in the current combat state
	Grounded bool
}

// Controlled marks the marine driven by the host's input snapshot.
type Controlled struct{}

// AttackCooldown gates the weapon.
type AttackCooldown struct {
	Remaining float64 // seconds until the next shot; never negative
	Interval  float64 // reset value after each shot
}

// Health is consumed by the bullet damage hook.
type Health struct {
	HP  float64
	Max float64
}
