package rrtree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/jkwang1992/rrdtplan/spatial"
)

// Tree is an ordered set of Nodes together with a dense, capacity-bounded
// pose buffer: row i of Poses holds Nodes[i].Pos. Capacity is fixed at
// construction to avoid reallocation mid-run.
//
// ParticleIDs tracks which particles (by index into the planner's particle
// slice, see package rrdt) are currently bound to this tree; rrtree itself
// has no notion of a Particle to avoid a dependency cycle between the two
// packages.
type Tree struct {
	Dim         int
	Nodes       []*Node
	Poses       *mat.Dense
	ParticleIDs []int
	capacity    int
}

// NewTree allocates a Tree with room for `capacity` nodes without
// reallocating.
func NewTree(dim, capacity int) *Tree {
	return &Tree{
		Dim:      dim,
		Poses:    mat.NewDense(capacity, dim, nil),
		capacity: capacity,
	}
}

// Len returns the number of nodes currently stored.
func (t *Tree) Len() int { return len(t.Nodes) }

// AddNewNode appends n to the tree and writes its position into the dense
// pose buffer at the matching row.
func (t *Tree) AddNewNode(n *Node) {
	idx := len(t.Nodes)
	t.Poses.SetRow(idx, n.Pos)
	t.Nodes = append(t.Nodes, n)
}

// ExtendTree appends another tree's nodes and copies its pose block in one
// shot.
func (t *Tree) ExtendTree(other *Tree) {
	base := len(t.Nodes)
	for i, n := range other.Nodes {
		t.Poses.SetRow(base+i, n.Pos)
	}
	t.Nodes = append(t.Nodes, other.Nodes...)
}

// PoseAt returns the stored pose row i as a spatial.Config. Used by the
// nearest-neighbour scan so it can operate purely off the dense buffer.
func (t *Tree) PoseAt(i int) spatial.Config {
	row := make(spatial.Config, t.Dim)
	mat.Row(row, i, t.Poses)
	return row
}

// RemoveParticle drops pid from this tree's particle bookkeeping.
func (t *Tree) RemoveParticle(pid int) {
	for i, id := range t.ParticleIDs {
		if id == pid {
			t.ParticleIDs = append(t.ParticleIDs[:i], t.ParticleIDs[i+1:]...)
			return
		}
	}
}

// AddParticle records pid as bound to this tree.
func (t *Tree) AddParticle(pid int) {
	for _, id := range t.ParticleIDs {
		if id == pid {
			return
		}
	}
	t.ParticleIDs = append(t.ParticleIDs, pid)
}

// RootTree is a Tree additionally carrying the rooted cost structure; there
// is exactly one RootTree per run. It embeds *Tree; the cost structure
// itself lives on Node.Cost/Node.Parent and is only meaningful for nodes
// currently owned by the RootTree.
type RootTree struct {
	*Tree
	Start *Node
	Goal  *Node
	// CMax is the best known path cost from Start to Goal; math.Inf(1)
	// until a path is found.
	CMax float64
}

// NewRootTree allocates a RootTree seeded with start and goal nodes. Goal is
// not yet connected; callers insert it into Nodes once reachable.
func NewRootTree(dim, capacity int, start, goal *Node) *RootTree {
	t := NewTree(dim, capacity)
	start.IsStart = true
	goal.IsGoal = true
	t.AddNewNode(start)
	return &RootTree{Tree: t, Start: start, Goal: goal}
}
