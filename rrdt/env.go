// Package rrdt implements the Rapidly-exploring Random disjoint-Tree
// planner: the directional proposal distribution, the particle/MAB
// scheduler, the disjoint-tree forest with online merging, and the RRT*
// rewire performed on absorption into the root tree.
package rrdt

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jkwang1992/rrdtplan/oracle"
	"github.com/jkwang1992/rrdtplan/rplog"
	"github.com/jkwang1992/rrdtplan/rrtree"
	"github.com/jkwang1992/rrdtplan/spatial"
	"github.com/jkwang1992/rrdtplan/telemetry"
)

// defaultParticleCount is K, the number of local samplers that live for
// the whole run.
const defaultParticleCount = 4

// Config gathers the planner's tunables, the subset of rrdtconfig.Options
// that the core loop itself consumes (CLI/file parsing lives one layer
// up, in package rrdtconfig).
type Config struct {
	Epsilon        float64
	Radius         float64
	GoalRadius     float64
	GoalBias       float64
	MaxNumberNodes int
	IgnoreStepSize bool
	Proposal       ProposalMode
	KeepGoForth    bool
	ParticleCount  int
	Seed           int64
}

// restartWhenMerge is the restart-on-merge policy: a particle whose tree
// gets absorbed is queued for a fresh restart rather than rebound to the
// surviving tree. Always true; the external CLI/options surface never
// exposes it as a tunable, so it is not threaded through Config.
const restartWhenMerge = true

// mergeRadius returns the tree-merge radius: epsilon in general, 1 rad
// for the 6-dimensional case.
func (c Config) mergeRadius(dim int) float64 {
	if dim == 6 {
		return 1.0
	}
	return c.Epsilon
}

// Env owns every run-scoped resource: the forest of trees, the particle
// set, the shared PRNG, and the Stats object passed by reference into
// every subsystem.
type Env struct {
	Oracle oracle.CollisionOracle
	Dim    int
	Config Config
	Logger rplog.Logger

	// trees holds every tree in the forest, indexed by a stable integer
	// handle. trees[0] is always the root tree's embedded *Tree; a nil slot
	// is a deleted disjoint tree whose id must not be reused.
	trees []*rrtree.Tree
	Root  *rrtree.RootTree

	particles []*Particle
	mab       *mabScheduler

	Stats *telemetry.Stats

	rng    *rand.Rand
	normal *distuv.Normal

	restartPool []int
}

// NewEnv constructs an Env seeded with start/goal and the oracle, validating
// feasibility up front.
func NewEnv(
	o oracle.CollisionOracle,
	cfg Config,
	start, goal spatial.Config,
	logger rplog.Logger,
) (*Env, error) {
	if o == nil {
		return nil, ErrNoOracle
	}
	dim := o.Dim()
	if len(start) != dim || len(goal) != dim {
		return nil, ErrDimMismatch
	}
	stats := telemetry.NewStats()

	feasible, err := o.Feasible(start)
	if err != nil {
		return nil, err
	}
	if !feasible {
		return nil, ErrStartNotFeasible
	}
	feasible, err = o.Feasible(goal)
	if err != nil {
		return nil, err
	}
	if !feasible {
		return nil, ErrGoalNotFeasible
	}

	if cfg.ParticleCount <= 0 {
		cfg.ParticleCount = defaultParticleCount
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	normal := &distuv.Normal{Mu: 0, Sigma: 1, Src: rand.New(rand.NewSource(cfg.Seed ^ 0x5bd1e995))}

	capacity := 2*cfg.MaxNumberNodes + 50

	startNode := rrtree.NewNode(start.Clone())
	goalNode := rrtree.NewNode(goal.Clone())
	root := rrtree.NewRootTree(dim, capacity, startNode, goalNode)
	root.CMax = math.Inf(1)

	env := &Env{
		Oracle: o,
		Dim:    dim,
		Config: cfg,
		Logger: logger,
		trees:  []*rrtree.Tree{root.Tree},
		Root:   root,
		Stats:  stats,
		rng:    rng,
		normal: normal,
	}

	// Particle seeding mirrors the reference planner's init order: K-2
	// particles at random free positions (each its own fresh disjoint
	// tree), one seeded at the goal (its own disjoint tree, merged into the
	// root only once absorb() finds it reachable), and finally the root
	// particle bound to the root tree at start.
	particles := make([]*Particle, cfg.ParticleCount)
	for i := 0; i < cfg.ParticleCount-2; i++ {
		pos := env.randomFeasiblePos()
		p := NewParticle(pos, 0, cfg.Proposal, cfg.KeepGoForth, normal)
		env.spawnDisjointTreeFor(i, p, pos)
		particles[i] = p
	}

	goalParticle := NewParticle(goal.Clone(), 0, cfg.Proposal, cfg.KeepGoForth, normal)
	env.spawnDisjointTreeForNode(cfg.ParticleCount-2, goalParticle, goalNode)
	particles[cfg.ParticleCount-2] = goalParticle

	rootParticle := NewParticle(start.Clone(), 0, cfg.Proposal, cfg.KeepGoForth, normal)
	rootParticle.IsRootParticle = true
	rootParticle.LastNode = startNode
	root.Tree.AddParticle(cfg.ParticleCount - 1)
	particles[cfg.ParticleCount-1] = rootParticle

	env.particles = particles
	env.mab = newMABScheduler(particles)

	return env, nil
}

// tree returns the tree bound to id, or nil if it has been deleted.
func (e *Env) tree(id int) *rrtree.Tree {
	if id < 0 || id >= len(e.trees) {
		return nil
	}
	return e.trees[id]
}

// newDisjointTree allocates a fresh disjoint tree seeded with n and returns
// its id.
func (e *Env) newDisjointTree(n *rrtree.Node) int {
	capacity := 2*e.Config.MaxNumberNodes + 50
	t := rrtree.NewTree(e.Dim, capacity)
	t.AddNewNode(n)
	e.trees = append(e.trees, t)
	return len(e.trees) - 1
}

// spawnDisjointTreeFor seeds a brand-new disjoint tree at pos and rebinds
// the particle at index pid to it.
func (e *Env) spawnDisjointTreeFor(pid int, p *Particle, pos spatial.Config) {
	e.spawnDisjointTreeForNode(pid, p, rrtree.NewNode(pos.Clone()))
}

// spawnDisjointTreeForNode is spawnDisjointTreeFor for a caller that has
// already built the seed Node (used at init for the goal particle, whose
// node must be the same object returned to the caller as root.Goal).
func (e *Env) spawnDisjointTreeForNode(pid int, p *Particle, n *rrtree.Node) {
	id := e.newDisjointTree(n)
	e.trees[id].AddParticle(pid)
	p.TreeID = id
	p.LastNode = n
}

// randomFeasiblePos draws a uniformly random feasible configuration within
// the oracle's bounds, recording invalid samples into Stats along the way.
func (e *Env) randomFeasiblePos() spatial.Config {
	low, high := e.Oracle.Bounds()
	for {
		q := make(spatial.Config, e.Dim)
		for i := range q {
			q[i] = low[i] + e.rng.Float64()*(high[i]-low[i])
		}
		feasible, err := e.Oracle.Feasible(q)
		if err != nil || !feasible {
			e.Stats.AddInvalid(true)
			continue
		}
		return q
	}
}
