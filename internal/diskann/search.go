package diskann

import (
	"github.com/xDarkicex/vecindex/internal/vecvalue"
)

// Result is one ranked search hit.
type Result struct {
	ID       uint64
	Distance float64
}

// Search runs the greedy best-first search of spec.md §4.5 against
// file, returning up to k results in ascending-distance order. L
// bounds the candidate frontier. Search never mutates the file.
func Search(file *File, query []float32, l, k int) ([]Result, error) {
	frontier, err := runSearch(file, query, l)
	if err != nil {
		return nil, err
	}
	return extractResults(frontier, k), nil
}

// runSearch performs the frontier-building walk shared by Search and
// the insertion engine's initial probe (spec.md §4.6 step 2), which
// needs the raw frontier (not yet truncated to k) to drive robust
// pruning.
func runSearch(file *File, query []float32, l int) (*frontier, error) {
	header := file.Header()
	if header.EntryOffset == 0 {
		return newFrontier(l), nil
	}

	fr := newFrontier(l)

	entry, err := file.ReadNode(int64(header.EntryOffset))
	if err != nil {
		return nil, err
	}
	entryDist, err := vecvalue.CosineF32(query, entry.Vector)
	if err != nil {
		return nil, err
	}
	fr.Add(entry, int64(header.EntryOffset), entryDist)

	for {
		c := fr.ClosestUnvisited()
		if c == nil {
			break
		}
		fr.MarkVisited(c)

		for _, nb := range c.node.Neighbors {
			if fr.Seen(nb.ID) {
				continue
			}
			m, err := file.ReadNode(nb.Offset)
			if err != nil {
				return nil, err
			}
			if m.ID != nb.ID {
				return nil, corruptNeighborMismatch(nb.ID, m.ID)
			}
			dist, err := vecvalue.CosineF32(query, m.Vector)
			if err != nil {
				return nil, err
			}
			fr.Add(m, nb.Offset, dist)
		}
	}

	return fr, nil
}

// extractResults ranks a frontier's accumulated candidates and
// truncates to k.
func extractResults(fr *frontier, k int) []Result {
	ranked := fr.Results()
	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]Result, k)
	for i := 0; i < k; i++ {
		out[i] = Result{ID: ranked[i].node.ID, Distance: float64(ranked[i].dist)}
	}
	return out
}
