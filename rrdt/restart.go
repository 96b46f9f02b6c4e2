package rrdt

import (
	"github.com/jkwang1992/rrdtplan/rrtree"
	"github.com/jkwang1992/rrdtplan/spatial"
)

// minTreeSizeToKeep is the node-count threshold below which an abandoned
// disjoint tree is dropped rather than kept.
const minTreeSizeToKeep = 5

// restartParticle moves particle pid to a fresh free position, merging it
// into an existing tree if one is reachable or spawning a new disjoint
// tree otherwise. It returns false if the particle was deferred to the
// restart pool (the caller must loop and process the pool again before
// continuing), true once the particle is actually settled onto a tree.
func (e *Env) restartParticle(pid int) bool {
	p := e.particles[pid]
	e.Stats.RestartCount++

	// Step 1: abandon a too-small disjoint tree outright.
	if !p.IsRootParticle {
		if old := e.tree(p.TreeID); old != nil && p.TreeID != rootTreeID && old.Len() < minTreeSizeToKeep {
			e.trees[p.TreeID] = nil
		}
	}

	// Step 2: draw a free position and try to absorb it into an existing
	// tree as an orphan.
	pos := e.randomFeasiblePos()
	orphan := rrtree.NewNode(pos.Clone())
	mergedTreeID, merged := e.absorb(orphan, orphanTree)

	// Step 3: if absorbed, defer to the restart pool rather than settle now.
	if merged && restartWhenMerge {
		e.restartPool = append(e.restartPool, pid)
		return false
	}

	// Step 4: detach from the old tree's bookkeeping, then either join the
	// tree we merged into or spawn a fresh disjoint tree.
	if old := e.tree(p.TreeID); old != nil {
		old.RemoveParticle(pid)
	}
	if merged {
		e.trees[mergedTreeID].AddParticle(pid)
		p.TreeID = mergedTreeID
		p.LastNode = orphan
	} else {
		e.spawnDisjointTreeFor(pid, p, pos)
	}

	// Step 5.
	p.resetEnergy()
	p.Pos = pos
	p.Dir = spatial.RandUnitVector(e.Dim, e.normal)
	p.FailedReset++
	return true
}
