package diskann

import "testing"

func TestRobustPruneRejectsNaNDistanceCandidate(t *testing.T) {
	zero := &Node{ID: 1, Vector: []float32{0, 0}}
	a := &Node{ID: 2, Vector: []float32{1, 0}}
	b := &Node{ID: 3, Vector: []float32{0, 1}}

	candidates := []*candidate{
		{node: a, offset: 200, dist: 0.1},
		{node: zero, offset: 100, dist: nanF32()}, // query against zero vector
		{node: b, offset: 300, dist: 0.2},
	}

	selected, err := robustPrune([]float32{1, 0}, candidates, 4, 1.2)
	if err != nil {
		t.Fatalf("robustPrune: %v", err)
	}
	for _, s := range selected {
		if s.node.ID == zero.ID {
			t.Fatalf("NaN-distance candidate should never be admitted, selected = %+v", selected)
		}
	}
	if len(selected) != 2 {
		t.Fatalf("got %d selected, want the two finite-distance candidates", len(selected))
	}
}
