package diskann

import (
	"math"
	"testing"
)

func TestSearchOnEmptyGraphReturnsNoResults(t *testing.T) {
	dev := newMemDevice()
	f, err := OpenDevice(dev, OpenOptions{Dimension: 2})
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	results, err := Search(f, []float32{1, 0}, 10, 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %d results on an empty graph, want 0", len(results))
	}
}

func TestSearchFindsExactMatch(t *testing.T) {
	dev := newMemDevice()
	f, err := OpenDevice(dev, OpenOptions{Dimension: 2})
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}

	vectors := map[uint64][]float32{
		1: {1, 0},
		2: {0, 1},
		3: {-1, 0},
		4: {0.9, 0.1},
	}
	ids := []uint64{1, 2, 3, 4}
	for _, id := range ids {
		if _, err := Insert(f, id, vectors[id], InsertConfig{R: 4, L: 10, Alpha: 1.2}); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}

	results, err := Search(f, []float32{1, 0}, 10, 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) == 0 || results[0].ID != 1 {
		t.Fatalf("nearest result = %+v, want id 1 first", results)
	}
}

// TestSearchRanksNaNDistanceLast exercises a zero-norm vector's NaN
// distance (spec.md §4.1/SPEC_FULL.md §3) through the full frontier
// walk, not just Cosine in isolation: the zero-vector node becomes the
// entry point and so is always the first candidate ClosestUnvisited
// must pick (best == nil lets it win), but every node discovered after
// it has a finite distance and must still outrank it in the final
// results.
func TestSearchRanksNaNDistanceLast(t *testing.T) {
	dev := newMemDevice()
	f, err := OpenDevice(dev, OpenOptions{Dimension: 2})
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	cfg := InsertConfig{R: 4, L: 10, Alpha: 1.2}

	// id 1 is the zero vector: every distance to or from it is NaN.
	// It becomes the entry point since it is inserted first.
	vectors := map[uint64][]float32{
		1: {0, 0},
		2: {1, 0},
		3: {0, 1},
	}
	for _, id := range []uint64{1, 2, 3} {
		if _, err := Insert(f, id, vectors[id], cfg); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}
	if f.Header().EntryOffset == 0 {
		t.Fatal("expected a non-zero entry offset")
	}

	results, err := Search(f, []float32{1, 0}, 10, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i := 0; i < len(results)-1; i++ {
		if math.IsNaN(results[i].Distance) {
			t.Fatalf("NaN-distance result %+v ranked ahead of %+v", results[i], results[i+1])
		}
	}
	if !math.IsNaN(results[len(results)-1].Distance) || results[len(results)-1].ID != 1 {
		t.Fatalf("last result = %+v, want the zero-vector node (id 1) with NaN distance", results[len(results)-1])
	}
}

func TestSearchResultsAreRankOrdered(t *testing.T) {
	dev := newMemDevice()
	f, err := OpenDevice(dev, OpenOptions{Dimension: 2})
	if err != nil {
		t.Fatalf("OpenDevice: %v", err)
	}
	for id, vec := range map[uint64][]float32{
		1: {1, 0}, 2: {0.8, 0.2}, 3: {0, 1}, 4: {-1, 0},
	} {
		if _, err := Insert(f, id, vec, InsertConfig{R: 4, L: 10, Alpha: 1.2}); err != nil {
			t.Fatalf("Insert(%d): %v", id, err)
		}
	}

	results, err := Search(f, []float32{1, 0}, 10, 4)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Distance < results[i-1].Distance {
			t.Fatalf("results not rank-ordered: %+v", results)
		}
	}
}
