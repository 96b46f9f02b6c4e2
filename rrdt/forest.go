package rrdt

import (
	"github.com/jkwang1992/rrdtplan/rrtree"
	"github.com/jkwang1992/rrdtplan/spatial"
)

const maxAbsorbCandidates = 5

const rootTreeID = 0

// orphanTree is the parentTreeID sentinel for absorb() calls made before a
// particle has any tree of its own.
const orphanTree = -1

type absorbCandidate struct {
	treeID int
	node   *rrtree.Node
	dist   float64
}

// absorb finds up to 5 nearest neighbours of newnode across all other
// trees within the merge radius, root tree examined last, and merges on
// the first visible candidate. Returns the id of the tree newnode now
// belongs to and whether a merge/insert happened.
func (e *Env) absorb(newnode *rrtree.Node, parentTreeID int) (int, bool) {
	r := e.Config.mergeRadius(e.Dim)

	var others []absorbCandidate
	var rootCands []absorbCandidate
	for id, t := range e.trees {
		if t == nil || id == parentTreeID || t.Len() == 0 {
			continue
		}
		for _, nn := range rrtree.KNearest(newnode.Pos, t, maxAbsorbCandidates, r) {
			c := absorbCandidate{treeID: id, node: nn, dist: spatial.Dist(newnode.Pos, nn.Pos)}
			if id == rootTreeID {
				rootCands = append(rootCands, c)
				continue
			}
			others = append(others, c)
		}
	}

	// Insertion sort by distance, tie-break lowest tree id (deterministic,
	// candidate counts here are tiny).
	sortCandidates := func(cs []absorbCandidate) {
		for i := 1; i < len(cs); i++ {
			for j := i; j > 0; j-- {
				a, b := cs[j-1], cs[j]
				if a.dist < b.dist || (a.dist == b.dist && a.treeID <= b.treeID) {
					break
				}
				cs[j-1], cs[j] = cs[j], cs[j-1]
			}
		}
	}
	sortCandidates(others)
	sortCandidates(rootCands)
	nOthers, nRoot := 0, 0
	for nOthers+nRoot < maxAbsorbCandidates && nOthers+nRoot < len(others)+len(rootCands) {
		if nRoot < len(rootCands) && (nOthers == len(others) || rootCands[nRoot].dist < others[nOthers].dist) {
			nRoot++
			continue
		}
		nOthers++
	}
	others = append(others[:nOthers], rootCands[:nRoot]...)

	for _, c := range others {
		visible, err := e.Oracle.Visible(newnode.Pos, c.node.Pos)
		e.Stats.AddVisible()
		if err != nil {
			e.Stats.OracleErrors++
			continue
		}
		if !visible {
			continue
		}
		if parentTreeID == orphanTree {
			if c.treeID == rootTreeID {
				e.rrtStarAddNode(newnode, c.node)
			} else {
				newnode.AddEdge(c.node)
				e.tree(c.treeID).AddNewNode(newnode)
			}
			return c.treeID, true
		}
		surviving := e.joinTrees(parentTreeID, c.treeID, newnode, c.node)
		return surviving, true
	}
	return parentTreeID, false
}

// joinTrees normalizes so T1 is the root tree (swapping endpoints along
// with it if needed), then either absorbs T2 into the root via RRT*
// insertion or, for two disjoint trees, simply links the two endpoints
// and copies T2's nodes into T1.
func (e *Env) joinTrees(t1id, t2id int, e1, e2 *rrtree.Node) int {
	if t2id == rootTreeID {
		t1id, t2id = t2id, t1id
		e1, e2 = e2, e1
	}

	if t1id == rootTreeID {
		e.joinTreeToRoot(t2id, e2, e1)
	} else {
		e1.AddEdge(e2)
		e.tree(t1id).ExtendTree(e.tree(t2id))
	}

	e.dissolveTree(t2id, t1id)
	return t1id
}

// joinTreeToRoot walks T2 breadth-first from e2 (reading each node's
// edges before they are freed) and reinserts every node into the root
// tree via RRT*, using rootEndpoint (a node already in the root, known
// visible to e2) as the first fallback nearest-neighbour.
func (e *Env) joinTreeToRoot(t2id int, e2, rootEndpoint *rrtree.Node) {
	visited := map[*rrtree.Node]bool{e2: true}
	nnFallback := map[*rrtree.Node]*rrtree.Node{e2: rootEndpoint}
	queue := []*rrtree.Node{e2}
	var order []*rrtree.Node

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, nb := range n.Edges.Slice() {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			nnFallback[nb] = n
			queue = append(queue, nb)
		}
	}

	for _, n := range order {
		e.rrtStarAddNode(n, nnFallback[n])
		n.FreeEdges()
	}
}

// dissolveTree removes t2id from the forest, rebinding or restarting
// every particle that was still bound to it.
func (e *Env) dissolveTree(t2id, survivorID int) {
	t2 := e.tree(t2id)
	pids := append([]int{}, t2.ParticleIDs...)
	for _, pid := range pids {
		p := e.particles[pid]
		if p.IsRootParticle {
			// the root particle is never rebound; it always stays on the
			// root tree.
			continue
		}
		if restartWhenMerge {
			e.restartPool = append(e.restartPool, pid)
			continue
		}
		p.TreeID = survivorID
		e.tree(survivorID).AddParticle(pid)
	}
	e.trees[t2id] = nil
}
