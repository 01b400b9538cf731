// Package terrain holds the static level geometry. Rectangles are immutable
// after construction; a resolv space serves as the broadphase and every
// candidate is confirmed with an exact AABB overlap test.
package terrain

import (
	"math"
	"sort"
	"sync"

	"github.com/solarlune/resolv"

	"github.com/marines/sim/internal/geom"
)

const (
	solidTag = "solid"
	cellSize = 2 // world units per broadphase cell
	margin   = 4 // cells of padding around the level bounds

	// resolv maps an object's far edge to cells at W-1/H-1, a pixel-space
	// convention. Growing broadphase objects by one unit keeps small
	// world-unit boxes registered in every cell they touch.
	cellSlack = 1
)

// Terrain is the immutable set of solid rectangles for one level.
type Terrain struct {
	rects  []geom.AABB
	space  *resolv.Space
	probe  *resolv.Object
	origin geom.Vec2 // world position of space (0,0)

	mu      sync.Mutex // guards probe and scratch
	scratch []int
}

// New builds terrain from rectangles. An empty list gives terrain nothing
// collides with.
func New(rects []geom.AABB) *Terrain {
	t := &Terrain{rects: append([]geom.AABB(nil), rects...)}
	if len(rects) == 0 {
		return t
	}

	bounds := rects[0]
	for _, r := range rects[1:] {
		bounds = bounds.Union(r)
	}
	pad := float64(cellSize * margin)
	t.origin = geom.V(bounds.Left()-pad, bounds.Top()-pad)
	w := int(math.Ceil((bounds.Size().X+2*pad)/cellSize)) * cellSize
	h := int(math.Ceil((bounds.Size().Y+2*pad)/cellSize)) * cellSize
	t.space = resolv.NewSpace(w, h, cellSize, cellSize)

	for i, r := range t.rects {
		corner := r.Min().Sub(t.origin)
		size := r.Size()
		obj := resolv.NewObject(corner.X, corner.Y, size.X+cellSlack, size.Y+cellSlack, solidTag)
		obj.Data = i
		t.space.Add(obj)
	}
	t.probe = resolv.NewObject(0, 0, 1, 1)
	t.space.Add(t.probe)
	return t
}

// Rects returns the terrain rectangles in level order.
func (t *Terrain) Rects() []geom.AABB {
	return t.rects
}

func (t *Terrain) Len() int { return len(t.rects) }

// Query calls fn for every rectangle that strictly overlaps box, in level
// order. fn returns false to stop early and must not call back into Query.
func (t *Terrain) Query(box geom.AABB, fn func(i int, r geom.AABB) bool) {
	if t.space == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	corner := box.Min().Sub(t.origin)
	size := box.Size()
	t.probe.X, t.probe.Y = corner.X, corner.Y
	t.probe.W, t.probe.H = size.X+cellSlack, size.Y+cellSlack
	t.probe.Update()

	hit := t.probe.Check(0, 0, solidTag)
	if hit == nil {
		return
	}
	t.scratch = t.scratch[:0]
	for _, obj := range hit.Objects {
		if i, ok := obj.Data.(int); ok {
			t.scratch = append(t.scratch, i)
		}
	}
	sort.Ints(t.scratch)
	last := -1
	for _, i := range t.scratch {
		if i == last {
			continue
		}
		last = i
		if !t.rects[i].Overlaps(box) {
			continue
		}
		if !fn(i, t.rects[i]) {
			return
		}
	}
}

// First returns the first rectangle in level order overlapping box.
func (t *Terrain) First(box geom.AABB) (geom.AABB, bool) {
	var found geom.AABB
	ok := false
	t.Query(box, func(_ int, r geom.AABB) bool {
		found, ok = r, true
		return false
	})
	return found, ok
}

// Overlapping returns every rectangle overlapping box, in level order.
func (t *Terrain) Overlapping(box geom.AABB) []geom.AABB {
	var out []geom.AABB
	t.Query(box, func(_ int, r geom.AABB) bool {
		out = append(out, r)
		return true
	})
	return out
}
