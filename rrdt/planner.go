package rrdt

import (
	"context"
	"math"

	"github.com/jkwang1992/rrdtplan/rrtree"
	"github.com/jkwang1992/rrdtplan/spatial"
)

// Run drives RunOnce until the node budget is exhausted or ctx is
// cancelled between iterations; there is no cancellation mid-iteration.
func (e *Env) Run(ctx context.Context) error {
	for !e.Stats.Done(e.Config.MaxNumberNodes) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		e.RunOnce()
	}
	e.Logger.CDebugf(ctx, "run finished: valid_sample=%d c_max=%v", e.Stats.ValidSample, e.Root.CMax)
	return nil
}

// RunOnce runs one atomic iteration of the main loop: restart-pool-drain
// -> MAB-pick -> direction-draw -> feasibility -> NN-query -> visibility
// -> insert -> absorb-merge.
func (e *Env) RunOnce() {
	if due := e.mab.tick(); due {
		for _, idx := range e.mab.lowEnergyIndices() {
			e.enqueueRestart(idx)
		}
	}

	if len(e.restartPool) > 0 {
		pid := e.restartPool[0]
		e.restartPool = e.restartPool[1:]
		if !e.restartParticle(pid) {
			// The restart absorbed into an existing tree; no node is added
			// this tick.
			return
		}
	}

	j, v, qRand := e.sampleFeasibleCandidate()
	p := e.particles[j]

	tree := e.tree(p.TreeID)
	nn := rrtree.NearestNeighbor(qRand, tree)
	qNew := spatial.StepFromTo(nn.Pos, qRand, e.Config.Epsilon, e.Config.IgnoreStepSize)

	visible, err := e.Oracle.Visible(nn.Pos, qNew)
	e.Stats.AddVisible()
	if err != nil {
		e.Stats.OracleErrors++
		visible = false
	}
	if !visible {
		e.Stats.AddInvalid(false)
		p.Fail(v)
		e.mab.onFailure(j)
		return
	}

	newnode := rrtree.NewNode(qNew)
	p.TryNewPos(qNew, v)
	p.Success()
	e.mab.onSuccess(j)
	p.Confirm(qNew)
	p.LastNode = newnode
	e.Stats.AddFree()

	e.connectTwoNodes(newnode, nn, p.TreeID)
	e.absorb(newnode, p.TreeID)
}

// sampleFeasibleCandidate repeats MAB-pick + direction-draw + feasibility
// check until a feasible q_rand is produced; at most one is produced per
// RunOnce call.
func (e *Env) sampleFeasibleCandidate() (int, spatial.Config, spatial.Config) {
	for {
		j := e.mab.pick(e.rng)
		p := e.particles[j]
		v := p.Proposal.Draw(p.Dir, e.rng)
		qRand := spatial.AddScaled(p.Pos, 3*e.Config.Epsilon, v)

		e.Stats.SamplerSuccessAll++
		feasible, err := e.Oracle.Feasible(qRand)
		e.Stats.AddFeasible()
		if err != nil {
			e.Stats.OracleErrors++
			feasible = false
		}
		if feasible {
			e.Stats.SamplerSuccess++
			return j, v, qRand
		}
		e.Stats.AddInvalid(true)
		e.Stats.SamplerFail++
		p.Fail(v)
		e.mab.onFailure(j)
	}
}

// connectTwoNodes links a new node to its nearest neighbour: root-tree
// insertions go through RRT*; disjoint-tree insertions just link edges
// and append.
func (e *Env) connectTwoNodes(newnode, nn *rrtree.Node, treeID int) {
	if treeID == rootTreeID {
		e.rrtStarAddNode(newnode, nn)
		return
	}
	newnode.AddEdge(nn)
	e.tree(treeID).AddNewNode(newnode)
}

// enqueueRestart queues particle idx for restart, skipping duplicates and
// the always-resident root particle, which never goes stale the same way
// a wandering one does.
func (e *Env) enqueueRestart(idx int) {
	if e.particles[idx].IsRootParticle {
		return
	}
	for _, pid := range e.restartPool {
		if pid == idx {
			return
		}
	}
	e.restartPool = append(e.restartPool, idx)
}

// GetSolutionPath walks the parent chain from goal back to start and
// reverses it; returns nil (empty) while c_max=infinity. Calling it twice
// in a row returns equal sequences since it only reads state.
func (e *Env) GetSolutionPath() []spatial.Config {
	if math.IsInf(e.Root.CMax, 1) {
		return nil
	}
	var path []spatial.Config
	for n := e.Root.Goal; n != nil; n = n.Parent {
		path = append(path, n.Pos.Clone())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
