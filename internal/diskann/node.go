package diskann

// Neighbor is one out-edge of a graph node: the neighbor's id and
// block offset, plus — the LM-DiskANN property that sets this format
// apart from plain Vamana — the neighbor's own vector, stored inline
// so the search frontier can be expanded without a second I/O.
type Neighbor struct {
	ID     uint64
	Offset int64
	Vector []float32
}

// Node is the logical graph node materialized from (or about to be
// written to) one block: the owner's id and vector, and its ordered
// out-neighbor list. len(Neighbors) <= R (the degree cap) <= layout
// RMax.
type Node struct {
	ID        uint64
	Vector    []float32
	Neighbors []Neighbor
}
