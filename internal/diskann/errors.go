package diskann

import "github.com/xDarkicex/vecindex/internal/verr"

// corruptNeighborMismatch reports a block whose owner id disagrees
// with the neighbor id that pointed at it (spec.md §3's block
// invariant: "every neighbor offset names a block start that
// currently holds a node whose id equals the stored neighbor id").
func corruptNeighborMismatch(wantID, gotID uint64) error {
	return verr.Corrupt("neighbor block owner id %d does not match expected id %d", gotID, wantID)
}
