package rrdt

import (
	"math"

	"github.com/jkwang1992/rrdtplan/rrtree"
	"github.com/jkwang1992/rrdtplan/spatial"
)

// rewireRadius computes the RRT* rewire radius:
// min(epsilon*log(|nodes|)^(1/d), config.Radius).
func (e *Env) rewireRadius() float64 {
	n := e.Root.Len()
	if n < 2 {
		return e.Config.Radius
	}
	r := e.Config.Epsilon * math.Pow(math.Log(float64(n)), 1/float64(e.Dim))
	if r > e.Config.Radius {
		r = e.Config.Radius
	}
	return r
}

// rrtStarAddNode inserts newnode into the root tree via RRT*'s
// choose-least-cost-parent + rewire + goal-check sequence. nn is the
// nearest-neighbour candidate already found by the caller; it is only
// used as a fallback parent if no candidate lies within the rewire radius.
func (e *Env) rrtStarAddNode(newnode, nn *rrtree.Node) {
	r := e.rewireRadius()
	parent, parentCost := e.chooseLeastCostParent(newnode, nn, r)
	newnode.Parent = parent
	newnode.Cost = parentCost
	parent.AddChild(newnode)
	e.Root.AddNewNode(newnode)

	e.rewire(newnode, r)
	e.checkGoal(newnode)
}

// chooseLeastCostParent picks, among root nodes within radius r that are
// mutually visible with newnode, the one minimizing cost(p)+d(p,newnode),
// tie-breaking by lowest insertion index. Falls back to nn if no
// candidate qualifies (nn is assumed visible, since the caller only
// reaches here after a successful visibility check in RunOnce).
func (e *Env) chooseLeastCostParent(newnode, nn *rrtree.Node, r float64) (*rrtree.Node, float64) {
	var best *rrtree.Node
	bestCost := math.Inf(1)
	// Root.Nodes is in insertion order, and the update below only fires on
	// a strictly lower cost, so the first node to achieve a given cost wins
	// — the lowest-insertion-index tie-break falls out for free.
	for _, n := range e.Root.Nodes {
		d := spatial.Dist(n.Pos, newnode.Pos)
		if d > r {
			continue
		}
		visible, err := e.Oracle.Visible(n.Pos, newnode.Pos)
		e.Stats.AddVisible()
		if err != nil {
			e.Stats.OracleErrors++
			continue
		}
		if !visible {
			continue
		}
		cost := n.Cost + d
		if cost < bestCost {
			bestCost = cost
			best = n
		}
	}
	if best == nil {
		d := spatial.Dist(nn.Pos, newnode.Pos)
		return nn, nn.Cost + d
	}
	return best, bestCost
}

// rewire re-examines every root node within radius r of newnode: if
// routing it through newnode is cheaper and the edge is visible, re-parent
// it and propagate the cost delta to its descendants.
func (e *Env) rewire(newnode *rrtree.Node, r float64) {
	for _, n := range e.Root.Nodes {
		if n == newnode || n == newnode.Parent {
			continue
		}
		d := spatial.Dist(newnode.Pos, n.Pos)
		if d > r {
			continue
		}
		newCost := newnode.Cost + d
		if newCost >= n.Cost {
			continue
		}
		visible, err := e.Oracle.Visible(newnode.Pos, n.Pos)
		e.Stats.AddVisible()
		if err != nil {
			e.Stats.OracleErrors++
			continue
		}
		if !visible {
			continue
		}
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
		n.Parent = newnode
		delta := newCost - n.Cost
		n.Cost = newCost
		newnode.AddChild(n)
		propagateCostDelta(n, delta)
	}
}

// propagateCostDelta adds delta to every descendant's cost, breadth-first
// in child-insertion order.
func propagateCostDelta(n *rrtree.Node, delta float64) {
	queue := append([]*rrtree.Node{}, n.Children.Slice()...)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		c.Cost += delta
		queue = append(queue, c.Children.Slice()...)
	}
}

// checkGoal checks whether newnode sees the goal within goal_radius and,
// if the resulting path is cheaper than c_max, adopts it.
func (e *Env) checkGoal(newnode *rrtree.Node) {
	goal := e.Root.Goal
	if newnode == goal {
		// The goal node itself was just inserted (its tree merged into the
		// root); chooseLeastCostParent has already given it a parent.
		if goal.Cost < e.Root.CMax {
			e.Root.CMax = goal.Cost
			e.Stats.CMax = goal.Cost
		}
		return
	}
	d := spatial.Dist(newnode.Pos, goal.Pos)
	if d >= e.Config.GoalRadius {
		return
	}
	visible, err := e.Oracle.Visible(newnode.Pos, goal.Pos)
	e.Stats.AddVisible()
	if err != nil {
		e.Stats.OracleErrors++
		return
	}
	if !visible {
		return
	}
	cost := newnode.Cost + d
	if cost < e.Root.CMax {
		e.Root.CMax = cost
		e.Stats.CMax = cost
		goal.Parent = newnode
	}
}
