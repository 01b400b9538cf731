package system

import (
	"time"

	"github.com/marines/sim/internal/core/ecs"
)

// Descriptor declares a system's place in the frame: the systems it must run
// after and the component stores it reads and writes. The scheduler derives
// the execution order and the parallel stages from these declarations.
type Descriptor struct {
	Name   string
	After  []string
	Reads  []ecs.StoreID
	Writes []ecs.StoreID
}

// System is the interface every ECS system implements.
type System interface {
	Descriptor() Descriptor
	Update(dt time.Duration)
}

// Barrier is applied between stages; ecs.World implements it by flushing its
// command buffer.
type Barrier interface {
	Flush()
}
