package rrdt

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jkwang1992/rrdtplan/rrtree"
	"github.com/jkwang1992/rrdtplan/spatial"
)

const (
	energyMin   = 0.0
	energyMax   = 10.0
	energyStart = 10.0
)

// Particle is a local sampler bound to one tree at a time. It is
// addressed by index into Env.particles; TreeID is likewise an index into
// Env.trees rather than a direct pointer, which avoids a Particle<->Tree
// import cycle between packages rrdt and rrtree.
type Particle struct {
	Pos    spatial.Config
	Dir    spatial.Config
	TreeID int

	Proposal *PMFState
	LastNode *rrtree.Node

	Energy float64

	Successed      int
	Failed         int
	FailedReset    int
	IsRootParticle bool

	provisionDir spatial.Config
	provisionPos spatial.Config
}

// NewParticle constructs a particle seeded at pos, bound to treeID, using
// mode (and keepGoForth, relevant only to ProposalRayCasting) for its
// directional proposal.
func NewParticle(pos spatial.Config, treeID int, mode ProposalMode, keepGoForth bool, rng *distuv.Normal) *Particle {
	return &Particle{
		Pos:      pos,
		Dir:      spatial.RandUnitVector(len(pos), rng),
		TreeID:   treeID,
		Proposal: NewPMFState(len(pos), mode, keepGoForth, rng),
		Energy:   energyStart,
	}
}

// TryNewPos records a proposed (position, direction) pair without
// committing it; Confirm or the failure path decide what happens next.
func (p *Particle) TryNewPos(pos, dir spatial.Config) {
	p.provisionPos = pos
	p.provisionDir = dir
}

// Confirm commits the last proposed (position, direction) pair as the
// particle's new state.
func (p *Particle) Confirm(pos spatial.Config) {
	p.Pos = pos
	p.Dir = p.provisionDir
}

// Success records a successful extension and promotes the proposal's
// provisional direction to mu.
func (p *Particle) Success() {
	p.Successed++
	p.Proposal.Success()
}

// Fail records a failed extension against direction v and updates the
// proposal distribution.
func (p *Particle) Fail(v spatial.Config) {
	p.Failed++
	p.Proposal.Fail(v)
}

// clampEnergy keeps Energy within [energyMin, energyMax].
func (p *Particle) clampEnergy() {
	if p.Energy < energyMin {
		p.Energy = energyMin
	}
	if p.Energy > energyMax {
		p.Energy = energyMax
	}
}

// decayEnergy applies the MAB failure decay: E[j] <- E[j]*0.7.
func (p *Particle) decayEnergy() {
	p.Energy *= 0.7
	p.clampEnergy()
}

// resetEnergy restores the starting energy, done whenever a particle
// restarts.
func (p *Particle) resetEnergy() {
	p.Energy = energyStart
}
