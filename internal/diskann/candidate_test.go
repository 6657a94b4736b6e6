package diskann

import (
	"math"
	"testing"
)

func nanF32() float32 { return float32(math.NaN()) }

func TestCompareDistOrdersNaNLast(t *testing.T) {
	cases := []struct {
		a, b float32
		want int
	}{
		{1, 2, -1},
		{2, 1, 1},
		{1, 1, 0},
		{nanF32(), 1, 1},
		{1, nanF32(), -1},
		{nanF32(), nanF32(), 0},
	}
	for _, c := range cases {
		if got := compareDist(c.a, c.b); got != c.want {
			t.Errorf("compareDist(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestIsFartherOrTiedTreatsNaNAsFarthest(t *testing.T) {
	nan := &candidate{node: &Node{ID: 1}, dist: nanF32()}
	finite := &candidate{node: &Node{ID: 2}, dist: 0.5}

	if !isFartherOrTied(nan, finite) {
		t.Fatal("NaN candidate should be farther than a finite one")
	}
	if isFartherOrTied(finite, nan) {
		t.Fatal("finite candidate should not be farther than a NaN one")
	}
}

func TestEvictFarthestPrefersToKeepFiniteCandidates(t *testing.T) {
	f := newFrontier(2)
	f.Add(&Node{ID: 1}, 100, nanF32())
	f.Add(&Node{ID: 2}, 200, 0.1)
	f.Add(&Node{ID: 3}, 300, 0.05) // triggers one eviction, cap is 2

	if len(f.members) != 2 {
		t.Fatalf("got %d members, want 2", len(f.members))
	}
	for _, m := range f.members {
		if m.node.ID == 1 {
			t.Fatalf("the NaN-distance candidate should have been evicted first, members = %+v", f.members)
		}
	}
}

func TestClosestUnvisitedNeverGetsStuckOnNaN(t *testing.T) {
	f := newFrontier(10)
	f.Add(&Node{ID: 1}, 100, nanF32())
	c := f.ClosestUnvisited()
	if c == nil || c.node.ID != 1 {
		t.Fatalf("with only one member, ClosestUnvisited should return it even if NaN, got %+v", c)
	}
	f.MarkVisited(c)

	f.Add(&Node{ID: 2}, 200, 0.9)
	c = f.ClosestUnvisited()
	if c == nil || c.node.ID != 2 {
		t.Fatalf("ClosestUnvisited = %+v, want the finite-distance candidate (id 2)", c)
	}
}

func TestResultsSortsNaNDistanceLast(t *testing.T) {
	f := newFrontier(10)
	f.Add(&Node{ID: 1}, 100, nanF32())
	f.Add(&Node{ID: 2}, 200, 0.5)
	f.Add(&Node{ID: 3}, 300, 0.1)

	results := f.Results()
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].node.ID != 3 || results[1].node.ID != 2 {
		t.Fatalf("finite-distance results out of order: %+v", results)
	}
	if results[2].node.ID != 1 || !math.IsNaN(float64(results[2].dist)) {
		t.Fatalf("NaN-distance candidate should sort last, got %+v", results[2])
	}
}
