package system

import (
	"fmt"
	"strings"
	"time"

	"github.com/marines/sim/internal/core/ecs"
	"golang.org/x/sync/errgroup"
)

// Scheduler executes systems in dependency order each frame.
//
// Build orders the registered systems once (Kahn's algorithm, ties broken by
// registration order) and packs consecutive systems into stages whose members
// neither depend on each other nor touch a store another member writes. The
// barrier runs after every stage, so queued creations and destructions are
// never observed half-applied by a later system.
type Scheduler struct {
	systems  []System
	order    []System
	stages   [][]System
	barrier  Barrier
	parallel bool
	workers  int
	built    bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithParallel runs the members of each stage concurrently on at most
// workers goroutines. workers <= 0 means one goroutine per member.
func WithParallel(workers int) Option {
	return func(s *Scheduler) {
		s.parallel = true
		s.workers = workers
	}
}

func NewScheduler(barrier Barrier, opts ...Option) *Scheduler {
	s := &Scheduler{
		systems: make([]System, 0, 16),
		barrier: barrier,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Scheduler) Register(sys System) {
	s.systems = append(s.systems, sys)
	s.built = false
}

// Build validates the declared graph and computes order and stages.
func (s *Scheduler) Build() error {
	n := len(s.systems)
	descs := make([]Descriptor, n)
	byName := make(map[string]int, n)
	for i, sys := range s.systems {
		d := sys.Descriptor()
		if d.Name == "" {
			return fmt.Errorf("system #%d has no name", i)
		}
		if _, dup := byName[d.Name]; dup {
			return fmt.Errorf("duplicate system %q", d.Name)
		}
		byName[d.Name] = i
		descs[i] = d
	}

	indegree := make([]int, n)
	dependents := make([][]int, n)
	deps := make([][]int, n)
	for i, d := range descs {
		for _, dep := range d.After {
			j, ok := byName[dep]
			if !ok {
				return fmt.Errorf("system %q depends on unknown system %q", d.Name, dep)
			}
			if j == i {
				return fmt.Errorf("system %q depends on itself", d.Name)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
			deps[i] = append(deps[i], j)
		}
	}

	// Kahn's algorithm; the ready list is kept in registration order.
	done := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i := 0; i < n; i++ {
				if !done[i] {
					stuck = append(stuck, descs[i].Name)
				}
			}
			return fmt.Errorf("dependency cycle among systems: %s", strings.Join(stuck, ", "))
		}
		done[next] = true
		order = append(order, next)
		for _, k := range dependents[next] {
			indegree[k]--
		}
	}

	s.order = s.order[:0]
	s.stages = s.stages[:0]
	var stage []int
	for _, i := range order {
		if len(stage) > 0 && !canJoin(i, stage, deps, descs) {
			s.stages = append(s.stages, s.pick(stage))
			stage = stage[:0]
		}
		stage = append(stage, i)
		s.order = append(s.order, s.systems[i])
	}
	if len(stage) > 0 {
		s.stages = append(s.stages, s.pick(stage))
	}
	s.built = true
	return nil
}

func (s *Scheduler) pick(idx []int) []System {
	out := make([]System, len(idx))
	for k, i := range idx {
		out[k] = s.systems[i]
	}
	return out
}

// canJoin reports whether system i may share a stage with members.
func canJoin(i int, members []int, deps [][]int, descs []Descriptor) bool {
	for _, m := range members {
		for _, d := range deps[i] {
			if d == m {
				return false
			}
		}
		if conflicts(descs[i], descs[m]) {
			return false
		}
	}
	return true
}

// conflicts is true when either system writes a store the other reads or
// writes.
func conflicts(a, b Descriptor) bool {
	return intersects(a.Writes, b.Writes) ||
		intersects(a.Writes, b.Reads) ||
		intersects(a.Reads, b.Writes)
}

func intersects(a, b []ecs.StoreID) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Tick runs one frame. Build must have succeeded.
func (s *Scheduler) Tick(dt time.Duration) {
	if !s.built {
		panic("system: Tick before Build")
	}
	for _, stage := range s.stages {
		if s.parallel && len(stage) > 1 {
			s.runParallel(stage, dt)
		} else {
			for _, sys := range stage {
				sys.Update(dt)
			}
		}
		if s.barrier != nil {
			s.barrier.Flush()
		}
	}
}

func (s *Scheduler) runParallel(stage []System, dt time.Duration) {
	var g errgroup.Group
	if s.workers > 0 {
		g.SetLimit(s.workers)
	}
	for _, sys := range stage {
		g.Go(func() error {
			sys.Update(dt)
			return nil
		})
	}
	_ = g.Wait()
}

// Order returns system names in execution order.
func (s *Scheduler) Order() []string {
	out := make([]string, len(s.order))
	for i, sys := range s.order {
		out[i] = sys.Descriptor().Name
	}
	return out
}

// Stages returns system names grouped by stage.
func (s *Scheduler) Stages() [][]string {
	out := make([][]string, len(s.stages))
	for i, stage := range s.stages {
		for _, sys := range stage {
			out[i] = append(out[i], sys.Descriptor().Name)
		}
	}
	return out
}
