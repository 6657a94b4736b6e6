package diskann

import "github.com/xDarkicex/vecindex/internal/verr"

// InsertConfig holds the degree cap, search-list cap and pruning
// coefficient used by Insert (spec.md §4.6).
type InsertConfig struct {
	R     int
	L     int
	Alpha float32
}

// InsertOutcome reports the result of one insertion, including any
// non-fatal backlink failures (spec.md §4.6 step 5 / §7).
type InsertOutcome struct {
	Offset          int64
	PartialBacklink []error
}

// Insert places (id, vec) into file following the search-then-prune-
// then-link protocol of spec.md §4.6.
func Insert(file *File, id uint64, vec []float32, cfg InsertConfig) (*InsertOutcome, error) {
	header := file.Header()
	if int(header.Dimension) != len(vec) {
		return nil, verr.DimensionMismatch(len(vec), int(header.Dimension))
	}

	if header.EntryOffset == 0 {
		node := &Node{ID: id, Vector: vec}
		off, err := file.WriteNewNode(node)
		if err != nil {
			return nil, err
		}
		newHeader := *header
		newHeader.EntryOffset = uint64(off)
		if err := file.UpdateHeader(&newHeader); err != nil {
			return nil, err
		}
		return &InsertOutcome{Offset: off}, nil
	}

	// The effective degree cap never exceeds what one block can hold.
	r := cfg.R
	if rMax := file.Layout().RMax; r > rMax {
		r = rMax
	}

	fr, err := runSearch(file, vec, cfg.L)
	if err != nil {
		return nil, err
	}
	vcand := fr.Results()

	selected, err := robustPrune(vec, vcand, r, cfg.Alpha)
	if err != nil {
		return nil, err
	}

	newNode := &Node{ID: id, Vector: vec, Neighbors: candidatesToNeighbors(selected)}
	off, err := file.WriteNewNode(newNode)
	if err != nil {
		return nil, err
	}

	outcome := &InsertOutcome{Offset: off}
	for _, y := range selected {
		if err := backlink(file, y, id, off, vec, r, cfg.Alpha); err != nil {
			outcome.PartialBacklink = append(outcome.PartialBacklink, verr.PartialBacklink(y.node.ID, err))
		}
	}

	return outcome, nil
}

// backlink adds (newID, newOffset, newVec) to y's neighbor set,
// re-pruning with robustPrune if the combined set would exceed R
// (spec.md §4.6 step 5). A failure here is recorded as a
// PartialBacklink and does not abort the overall insert: p is already
// written and reachable from itself.
func backlink(file *File, y *candidate, newID uint64, newOffset int64, newVec []float32, r int, alpha float32) error {
	yNode, err := file.ReadNode(y.offset)
	if err != nil {
		return err
	}

	combined := make([]Neighbor, len(yNode.Neighbors), len(yNode.Neighbors)+1)
	copy(combined, yNode.Neighbors)
	combined = append(combined, Neighbor{ID: newID, Offset: newOffset, Vector: newVec})

	if len(combined) <= r {
		yNode.Neighbors = combined
	} else {
		cands, err := candidatesFromNeighbors(yNode.Vector, combined)
		if err != nil {
			return err
		}
		pruned, err := robustPrune(yNode.Vector, cands, r, alpha)
		if err != nil {
			return err
		}
		yNode.Neighbors = candidatesToNeighbors(pruned)
	}

	return file.OverwriteNode(y.offset, yNode)
}
