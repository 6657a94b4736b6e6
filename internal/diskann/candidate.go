package diskann

import "math"

// candidate is one entry in the search frontier: a loaded node, its
// distance to the query, and whether it has been expanded yet.
// Grounded on the teacher's util.Candidate/MinHeap/MaxHeap pair
// (internal/util/heap.go), generalized from a pair of uint32-id heaps
// into the single visited-flagged frontier spec.md §4.5 describes,
// since the search here needs "closest unvisited" rather than plain
// min/max extraction.
type candidate struct {
	node    *Node
	offset  int64
	dist    float32
	visited bool
}

// frontier is the bounded candidate list C of spec.md §4.5: at most L
// entries, some visited, some not. seenIDs additionally remembers
// every id ever added to the frontier (even after eviction) so the
// search never issues a second block read for the same node; visited
// members are preserved forever in the visited map (spec.md's V) even
// after falling out of the bounded frontier.
type frontier struct {
	l       int
	members []*candidate
	seenIDs map[uint64]bool
	visited map[uint64]*candidate
}

func newFrontier(l int) *frontier {
	return &frontier{
		l:       l,
		members: make([]*candidate, 0, l+1),
		seenIDs: make(map[uint64]bool),
		visited: make(map[uint64]*candidate),
	}
}

// Seen reports whether id has ever been added to the frontier,
// whether or not it is still a current member.
func (f *frontier) Seen(id uint64) bool { return f.seenIDs[id] }

// Add inserts a freshly-loaded node (read from offset) into the
// frontier, evicting the current farthest member if the frontier now
// exceeds its cap L.
func (f *frontier) Add(node *Node, offset int64, dist float32) {
	c := &candidate{node: node, offset: offset, dist: dist}
	f.seenIDs[node.ID] = true
	f.members = append(f.members, c)
	if len(f.members) > f.l {
		f.evictFarthest()
	}
}

func (f *frontier) evictFarthest() {
	worst := 0
	for i := 1; i < len(f.members); i++ {
		if isFartherOrTied(f.members[i], f.members[worst]) {
			worst = i
		}
	}
	f.members = append(f.members[:worst], f.members[worst+1:]...)
}

// compareDist orders two f32 distances for ranking purposes, with
// NaN (spec.md §4.1/SPEC_FULL.md §3's zero-norm-vector distance)
// always ranking after every finite value, and two NaNs ranking equal
// to each other. Plain <, >, == comparisons against NaN are always
// false, so every distance comparison in this package must go through
// this function rather than comparing a.dist/b.dist directly.
func compareDist(a, b float32) int {
	aNaN, bNaN := math.IsNaN(float64(a)), math.IsNaN(float64(b))
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// isFartherOrTied reports whether a should be evicted before b: a
// strictly farther, or tied on distance and higher id (an arbitrary
// but deterministic tiebreak — eviction order is not spec'd beyond
// "evict the farthest").
func isFartherOrTied(a, b *candidate) bool {
	switch compareDist(a.dist, b.dist) {
	case 1:
		return true
	case -1:
		return false
	default:
		return a.node.ID > b.node.ID
	}
}

// ClosestUnvisited returns the unvisited member minimizing distance
// (ties broken by lower id), or nil if every member is visited. A
// NaN-distance member is never chosen while a finite-distance member
// remains, since compareDist ranks NaN after every finite value.
func (f *frontier) ClosestUnvisited() *candidate {
	var best *candidate
	for _, c := range f.members {
		if c.visited {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		switch compareDist(c.dist, best.dist) {
		case -1:
			best = c
		case 0:
			if c.node.ID < best.node.ID {
				best = c
			}
		}
	}
	return best
}

// MarkVisited flags c as visited and records it permanently in the
// visited set, independent of whether it later falls out of the
// bounded frontier.
func (f *frontier) MarkVisited(c *candidate) {
	c.visited = true
	f.visited[c.node.ID] = c
}

// Results returns every distinct candidate currently known — the
// union of the visited set and the current bounded frontier — ordered
// by ascending distance, ties broken by ascending id (spec.md §4.5
// step 4).
func (f *frontier) Results() []*candidate {
	byID := make(map[uint64]*candidate, len(f.visited)+len(f.members))
	for id, c := range f.visited {
		byID[id] = c
	}
	for _, c := range f.members {
		byID[c.node.ID] = c
	}

	out := make([]*candidate, 0, len(byID))
	for _, c := range byID {
		out = append(out, c)
	}
	sortCandidates(out)
	return out
}

func sortCandidates(cs []*candidate) {
	// Simple insertion sort: frontiers are bounded by L and typically
	// small (tens to low thousands), so this stays cheap while keeping
	// the tiebreak rule (ascending distance, then ascending id)
	// explicit and easy to audit.
	for i := 1; i < len(cs); i++ {
		j := i
		for j > 0 && less(cs[j], cs[j-1]) {
			cs[j], cs[j-1] = cs[j-1], cs[j]
			j--
		}
	}
}

func less(a, b *candidate) bool {
	switch compareDist(a.dist, b.dist) {
	case -1:
		return true
	case 1:
		return false
	default:
		return a.node.ID < b.node.ID
	}
}
