package diskann

import (
	"math"

	"github.com/xDarkicex/vecindex/internal/vecvalue"
)

// robustPrune implements spec.md §4.6 step 3: sort the candidate set
// by ascending distance to center, then greedily admit a candidate
// only while it stays alpha-diverse from every neighbor already
// chosen, stopping once r neighbors are selected. Grounded on the
// teacher's NeighborSelector (internal/index/hnsw/neighbors.go), whose
// simplified "80% threshold" diversity heuristic this replaces with
// the exact Vamana rule spec.md commits to.
func robustPrune(center []float32, candidates []*candidate, r int, alpha float32) ([]*candidate, error) {
	sorted := make([]*candidate, len(candidates))
	copy(sorted, candidates)
	sortCandidates(sorted)

	selected := make([]*candidate, 0, r)
	for _, x := range sorted {
		if len(selected) >= r {
			break
		}
		admit := true
		for _, y := range selected {
			dxy, err := vecvalue.CosineF32(x.node.Vector, y.node.Vector)
			if err != nil {
				return nil, err
			}
			// x.dist can be NaN (zero-norm center or x); reject
			// explicitly rather than relying on alpha*dxy > NaN
			// silently evaluating to false.
			if math.IsNaN(float64(x.dist)) || !(alpha*dxy > x.dist) {
				admit = false
				break
			}
		}
		if admit {
			selected = append(selected, x)
		}
	}
	return selected, nil
}

// candidatesFromNeighbors computes each neighbor's distance to center,
// used when re-pruning a backlink target's combined neighbor set.
func candidatesFromNeighbors(center []float32, neighbors []Neighbor) ([]*candidate, error) {
	out := make([]*candidate, len(neighbors))
	for i, nb := range neighbors {
		dist, err := vecvalue.CosineF32(center, nb.Vector)
		if err != nil {
			return nil, err
		}
		out[i] = &candidate{
			node:   &Node{ID: nb.ID, Vector: nb.Vector},
			offset: nb.Offset,
			dist:   dist,
		}
	}
	return out, nil
}

// candidatesToNeighbors converts a pruned candidate selection back
// into the (id, offset, vector) triples the block format stores.
func candidatesToNeighbors(cs []*candidate) []Neighbor {
	out := make([]Neighbor, len(cs))
	for i, c := range cs {
		out[i] = Neighbor{ID: c.node.ID, Offset: c.offset, Vector: c.node.Vector}
	}
	return out
}
