package terrain

import (
	"testing"

	"github.com/marines/sim/internal/geom"
)

func level() *Terrain {
	return New([]geom.AABB{
		geom.FromRect(0, 10, 40, 2),  // floor
		geom.FromRect(12, 6, 6, 0.5), // platform
		geom.FromRect(38, 0, 2, 10),  // right wall
	})
}

func TestQuery_FindsOverlapsInLevelOrder(t *testing.T) {
	tr := level()
	// Box spanning floor and wall corner.
	box := geom.Box(geom.V(38.5, 9.5), geom.V(1, 1))
	var got []int
	tr.Query(box, func(i int, _ geom.AABB) bool {
		got = append(got, i)
		return true
	})
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("got %v, want [0 2]", got)
	}
}

func TestQuery_TouchingIsNotOverlap(t *testing.T) {
	tr := level()
	// Resting exactly on the floor.
	box := geom.Box(geom.V(5, 9), geom.V(0.4, 1))
	if _, ok := tr.First(box); ok {
		t.Fatal("touching the floor must not count as overlap")
	}
}

func TestQuery_EmptyAir(t *testing.T) {
	tr := level()
	if got := tr.Overlapping(geom.Box(geom.V(5, 3), geom.V(0.5, 0.5))); len(got) != 0 {
		t.Fatalf("got %v in open air", got)
	}
}

func TestQuery_OutsideSpace(t *testing.T) {
	tr := level()
	if _, ok := tr.First(geom.Box(geom.V(-500, -500), geom.V(1, 1))); ok {
		t.Fatal("nothing exists far outside the level")
	}
}

func TestQuery_StopsEarly(t *testing.T) {
	tr := level()
	n := 0
	tr.Query(geom.Box(geom.V(38.5, 9.5), geom.V(1, 1)), func(int, geom.AABB) bool {
		n++
		return false
	})
	if n != 1 {
		t.Fatalf("callback ran %d times after asking to stop", n)
	}
}

func TestNew_EmptyTerrain(t *testing.T) {
	tr := New(nil)
	if tr.Len() != 0 {
		t.Fatal("expected no rects")
	}
	if _, ok := tr.First(geom.Box(geom.V(0, 0), geom.V(100, 100))); ok {
		t.Fatal("empty terrain must never collide")
	}
}

func TestQuery_SmallBoxesAcrossCellEdges(t *testing.T) {
	// Thin post sitting right on a broadphase cell boundary.
	tr := New([]geom.AABB{geom.FromRect(2, 0, 0.5, 4)})
	bullet := geom.Box(geom.V(2.05, 1), geom.V(0.15, 0.08))
	if _, ok := tr.First(bullet); !ok {
		t.Fatal("bullet straddling a cell edge missed the post")
	}
	miss := geom.Box(geom.V(1.8, 1), geom.V(0.15, 0.08))
	if _, ok := tr.First(miss); ok {
		t.Fatal("bullet left of the post must not hit it")
	}
}
