// Package rrtree implements the Node/Tree data model: a contiguous-pose-array
// tree store shared by both the disjoint-tree forest and the rooted
// (RRT*-rewired) root tree.
package rrtree

import "github.com/jkwang1992/rrdtplan/spatial"

// NodeSet is an insertion-ordered set of *Node. A plain map would satisfy
// the same lookups, but iteration over maps/sets needs to use insertion
// order to avoid hash-order nondeterminism across seeded runs; ranging
// over a Go map does not give that guarantee, so membership and order are
// tracked separately here.
type NodeSet struct {
	order []*Node
	has   map[*Node]struct{}
}

func newNodeSet() *NodeSet {
	return &NodeSet{has: make(map[*Node]struct{})}
}

// Add records n, a no-op if already present.
func (s *NodeSet) Add(n *Node) {
	if _, ok := s.has[n]; ok {
		return
	}
	s.has[n] = struct{}{}
	s.order = append(s.order, n)
}

// Remove drops n, a no-op if absent.
func (s *NodeSet) Remove(n *Node) {
	if _, ok := s.has[n]; !ok {
		return
	}
	delete(s.has, n)
	for i, m := range s.order {
		if m == n {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Has reports whether n is a member.
func (s *NodeSet) Has(n *Node) bool {
	_, ok := s.has[n]
	return ok
}

// Slice returns members in insertion order. The returned slice must not be
// mutated by the caller.
func (s *NodeSet) Slice() []*Node { return s.order }

// Len returns the number of members.
func (s *NodeSet) Len() int { return len(s.order) }

// Node is the single node type used throughout the planner.
//
// Edges is a general-graph adjacency used by disjoint trees; Parent/
// Children/Cost carry the rooted-tree structure used once a branch has been
// absorbed into the root tree. Both may be populated or empty depending on
// which tree currently owns the node.
type Node struct {
	Pos      spatial.Config
	Cost     float64
	Parent   *Node
	Children *NodeSet
	Edges    *NodeSet
	IsStart  bool
	IsGoal   bool
}

// NewNode constructs a fresh, unattached Node at pos.
func NewNode(pos spatial.Config) *Node {
	return &Node{
		Pos:      pos,
		Children: newNodeSet(),
		Edges:    newNodeSet(),
	}
}

// AddChild records child as a child of n in the rooted tree.
func (n *Node) AddChild(child *Node) {
	n.Children.Add(child)
}

// RemoveChild detaches child from n's rooted-tree children.
func (n *Node) RemoveChild(child *Node) {
	n.Children.Remove(child)
}

// AddEdge records an undirected edge between n and other (disjoint-tree
// adjacency).
func (n *Node) AddEdge(other *Node) {
	n.Edges.Add(other)
	other.Edges.Add(n)
}

// FreeEdges drops n's undirected-edge adjacency, used once a node has been
// absorbed into the root tree and its edges are no longer needed.
func (n *Node) FreeEdges() {
	n.Edges = nil
}
