package rrdt

import (
	"testing"

	"go.viam.com/test"

	"github.com/jkwang1992/rrdtplan/oracle"
	"github.com/jkwang1992/rrdtplan/rrtree"
	"github.com/jkwang1992/rrdtplan/spatial"
)

// newTestEnv builds an Env with the minimum particle count (goal + root
// particle only, no randomly placed ones) so the forest starts with exactly
// two trees at known, far-apart positions and tests can add their own
// disjoint trees without interference from randomly seeded ones.
func newTestEnv(t *testing.T) *Env {
	t.Helper()
	o := oracle.NewImageOracleFromGrid(emptyGrid(100, 100))
	cfg := testConfig()
	cfg.ParticleCount = 2
	env, err := NewEnv(o, cfg, spatial.Config{5, 5}, spatial.Config{90, 90}, testLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return env
}

func TestAbsorbMergesWithinRadiusAndReducesTreeCount(t *testing.T) {
	env := newTestEnv(t)

	// Build two disjoint trees whose seed nodes are within the merge
	// radius of each other.
	a := rrtree.NewNode(spatial.Config{40, 40})
	aID := env.newDisjointTree(a)
	b := rrtree.NewNode(spatial.Config{41, 41})
	bID := env.newDisjointTree(b)

	before := 0
	for _, tr := range env.trees {
		if tr != nil {
			before++
		}
	}

	newnode := rrtree.NewNode(spatial.Config{40.5, 40.5})
	env.tree(aID).AddNewNode(newnode)
	survivor, merged := env.absorb(newnode, aID)
	test.That(t, merged, test.ShouldBeTrue)
	// parentTreeID (aID) survives; b's nodes are folded into it.
	test.That(t, survivor, test.ShouldEqual, aID)

	after := 0
	for _, tr := range env.trees {
		if tr != nil {
			after++
		}
	}
	test.That(t, after, test.ShouldEqual, before-1)
	test.That(t, env.tree(bID), test.ShouldBeNil)
}

func TestAbsorbOrphanIntoRootUsesRRTStar(t *testing.T) {
	env := newTestEnv(t)
	// Put a root node close to the orphan so absorb merges it via RRT*.
	rootNear := rrtree.NewNode(spatial.Config{50, 50})
	env.rrtStarAddNode(rootNear, env.Root.Start)

	orphan := rrtree.NewNode(spatial.Config{51, 51})
	survivor, merged := env.absorb(orphan, orphanTree)
	test.That(t, merged, test.ShouldBeTrue)
	test.That(t, survivor, test.ShouldEqual, rootTreeID)
	test.That(t, orphan.Parent, test.ShouldNotBeNil)
}

func TestJoinTreeToRootReinsertsEveryNodeViaRRTStar(t *testing.T) {
	env := newTestEnv(t)

	n1 := rrtree.NewNode(spatial.Config{60, 60})
	t1 := env.newDisjointTree(n1)
	n2 := rrtree.NewNode(spatial.Config{61, 61})
	n1.AddEdge(n2)
	env.tree(t1).AddNewNode(n2)

	rootEndpoint := env.Root.Start
	env.joinTreeToRoot(t1, n1, rootEndpoint)

	test.That(t, n1.Parent, test.ShouldNotBeNil)
	test.That(t, n2.Parent, test.ShouldNotBeNil)
	test.That(t, n1.Edges, test.ShouldBeNil)
	test.That(t, n2.Edges, test.ShouldBeNil)
}

func TestDissolveTreeRebindsOrRestartsBoundParticles(t *testing.T) {
	env := newTestEnv(t)
	p := env.particles[0]
	oldID := p.TreeID
	survivorID := rootTreeID

	env.dissolveTree(oldID, survivorID)
	test.That(t, env.tree(oldID), test.ShouldBeNil)
	if restartWhenMerge {
		test.That(t, env.restartPool, test.ShouldContain, 0)
	} else {
		test.That(t, p.TreeID, test.ShouldEqual, survivorID)
	}
}
