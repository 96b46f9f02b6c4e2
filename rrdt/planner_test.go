package rrdt

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/jkwang1992/rrdtplan/oracle"
	"github.com/jkwang1992/rrdtplan/spatial"
)

func TestRunFindsAPathOnAnEmptyMap(t *testing.T) {
	o := oracle.NewImageOracleFromGrid(emptyGrid(100, 100))
	cfg := Config{
		Epsilon:        15,
		Radius:         30,
		GoalRadius:     20,
		MaxNumberNodes: 500,
		Proposal:       ProposalDynamicVonMises,
		ParticleCount:  4,
		Seed:           7,
	}
	env, err := NewEnv(o, cfg, spatial.Config{5, 5}, spatial.Config{90, 90}, testLogger(t))
	test.That(t, err, test.ShouldBeNil)

	test.That(t, env.Run(context.Background()), test.ShouldBeNil)
	test.That(t, env.Stats.Done(cfg.MaxNumberNodes), test.ShouldBeTrue)

	path := env.GetSolutionPath()
	test.That(t, path, test.ShouldNotBeNil)
	test.That(t, path[0][0], test.ShouldAlmostEqual, 5.0)
	test.That(t, path[len(path)-1][0], test.ShouldAlmostEqual, 90.0)
}

func TestGetSolutionPathIsEmptyBeforeAPathExists(t *testing.T) {
	env := newTestEnv(t)
	test.That(t, math.IsInf(env.Root.CMax, 1), test.ShouldBeTrue)
	test.That(t, env.GetSolutionPath(), test.ShouldBeNil)
}

func TestGetSolutionPathIsIdempotent(t *testing.T) {
	o := oracle.NewImageOracleFromGrid(emptyGrid(100, 100))
	cfg := Config{
		Epsilon:        15,
		Radius:         30,
		GoalRadius:     20,
		MaxNumberNodes: 300,
		Proposal:       ProposalDynamicVonMises,
		ParticleCount:  4,
		Seed:           11,
	}
	env, err := NewEnv(o, cfg, spatial.Config{5, 5}, spatial.Config{90, 90}, testLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, env.Run(context.Background()), test.ShouldBeNil)

	first := env.GetSolutionPath()
	second := env.GetSolutionPath()
	test.That(t, len(first), test.ShouldEqual, len(second))
	for i := range first {
		test.That(t, first[i][0], test.ShouldAlmostEqual, second[i][0])
		test.That(t, first[i][1], test.ShouldAlmostEqual, second[i][1])
	}
}

func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	build := func() *Env {
		o := oracle.NewImageOracleFromGrid(emptyGrid(100, 100))
		cfg := Config{
			Epsilon:        15,
			Radius:         30,
			GoalRadius:     20,
			MaxNumberNodes: 200,
			Proposal:       ProposalDynamicVonMises,
			ParticleCount:  4,
			Seed:           99,
		}
		env, err := NewEnv(o, cfg, spatial.Config{5, 5}, spatial.Config{90, 90}, testLogger(t))
		test.That(t, err, test.ShouldBeNil)
		return env
	}

	a := build()
	b := build()
	test.That(t, a.Run(context.Background()), test.ShouldBeNil)
	test.That(t, b.Run(context.Background()), test.ShouldBeNil)

	test.That(t, a.Stats.ValidSample, test.ShouldEqual, b.Stats.ValidSample)
	test.That(t, a.Root.CMax, test.ShouldAlmostEqual, b.Root.CMax)
	test.That(t, a.Stats.FeasibleCount, test.ShouldEqual, b.Stats.FeasibleCount)
	test.That(t, a.Stats.VisibleCount, test.ShouldEqual, b.Stats.VisibleCount)
}

func TestRunRespectsContextCancellation(t *testing.T) {
	o := oracle.NewImageOracleFromGrid(emptyGrid(100, 100))
	cfg := Config{
		Epsilon:        15,
		Radius:         30,
		GoalRadius:     20,
		MaxNumberNodes: 1_000_000,
		Proposal:       ProposalDynamicVonMises,
		ParticleCount:  4,
		Seed:           3,
	}
	env, err := NewEnv(o, cfg, spatial.Config{5, 5}, spatial.Config{90, 90}, testLogger(t))
	test.That(t, err, test.ShouldBeNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.That(t, errors.Is(env.Run(ctx), context.Canceled), test.ShouldBeTrue)
}
