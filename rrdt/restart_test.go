package rrdt

import (
	"testing"

	"go.viam.com/test"

	"github.com/jkwang1992/rrdtplan/oracle"
	"github.com/jkwang1992/rrdtplan/spatial"
)

func TestRestartParticleResetsEnergyAndBindsToALiveTree(t *testing.T) {
	o := oracle.NewImageOracleFromGrid(emptyGrid(100, 100))
	cfg := testConfig()
	cfg.ParticleCount = 4
	env, err := NewEnv(o, cfg, spatial.Config{5, 5}, spatial.Config{90, 90}, testLogger(t))
	test.That(t, err, test.ShouldBeNil)

	p := env.particles[0]
	p.Energy = 0.2
	resets := p.FailedReset

	settled := env.restartParticle(0)
	if !settled {
		// The drawn restart position absorbed into an existing tree; the
		// particle is deferred to the restart pool rather than settled
		// immediately.
		test.That(t, env.restartPool, test.ShouldContain, 0)
		return
	}
	test.That(t, p.Energy, test.ShouldAlmostEqual, energyStart)
	test.That(t, p.FailedReset, test.ShouldEqual, resets+1)

	tr := env.tree(p.TreeID)
	test.That(t, tr, test.ShouldNotBeNil)
	test.That(t, tr.Len(), test.ShouldBeGreaterThan, 0)
}

func TestRestartParticleDropsUndersizedOldTree(t *testing.T) {
	o := oracle.NewImageOracleFromGrid(emptyGrid(100, 100))
	cfg := testConfig()
	cfg.ParticleCount = 4
	env, err := NewEnv(o, cfg, spatial.Config{5, 5}, spatial.Config{90, 90}, testLogger(t))
	test.That(t, err, test.ShouldBeNil)

	p := env.particles[0]
	oldTreeID := p.TreeID
	test.That(t, env.tree(oldTreeID).Len(), test.ShouldBeLessThan, minTreeSizeToKeep)

	settled := env.restartParticle(0)

	// step 1 of restart always abandons a too-small old tree up front,
	// regardless of whether the particle settles this call or is deferred
	// to the restart pool.
	test.That(t, env.tree(oldTreeID), test.ShouldBeNil)
	if settled {
		test.That(t, p.TreeID, test.ShouldNotEqual, oldTreeID)
	}
}
