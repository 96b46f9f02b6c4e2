package rrtree

import "github.com/jkwang1992/rrdtplan/spatial"

// NearestNeighbor performs a linear scan over tree.Poses: nn_idx(q,
// poses[:m]) = argmin_i d(q, poses[i]). Ties are broken by lowest index for
// deterministic results under a fixed seed.
//
// A space-partitioning index could replace this scan as long as the same
// tie-break rule holds; this repo does not use one, because the node
// counts a planner run targets (a few thousand) don't justify the added
// complexity, and because single-threaded, deterministic draw ordering is
// required, which a parallel scan would have to carefully preserve.
func NearestNeighbor(q spatial.Config, t *Tree) *Node {
	if len(t.Nodes) == 0 {
		return nil
	}
	bestIdx := 0
	bestDist := spatial.Dist(q, t.PoseAt(0))
	for i := 1; i < len(t.Nodes); i++ {
		d := spatial.Dist(q, t.PoseAt(i))
		if d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	return t.Nodes[bestIdx]
}

// KNearest returns up to k nodes within radius of q, scanning t's dense pose
// buffer, ordered by increasing distance (ties broken by insertion index).
// The forest manager's absorb step calls this per candidate tree so it can
// fall through to the next-nearest node when the nearest one is occluded.
func KNearest(q spatial.Config, t *Tree, k int, radius float64) []*Node {
	type cand struct {
		n *Node
		d float64
		i int
	}
	var cands []cand
	for i, n := range t.Nodes {
		d := spatial.Dist(q, t.PoseAt(i))
		if d <= radius {
			cands = append(cands, cand{n, d, i})
		}
	}
	// Insertion sort: candidate counts here are small (radius-bounded), and
	// this keeps the tie-break (lowest index) stable without pulling in a
	// generic sort comparator per call.
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0; j-- {
			a, b := cands[j-1], cands[j]
			if a.d < b.d || (a.d == b.d && a.i <= b.i) {
				break
			}
			cands[j-1], cands[j] = cands[j], cands[j-1]
		}
	}
	if len(cands) > k {
		cands = cands[:k]
	}
	out := make([]*Node, len(cands))
	for i, c := range cands {
		out[i] = c.n
	}
	return out
}
