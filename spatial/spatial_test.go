package spatial

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestDistEuclidean2D(t *testing.T) {
	d := Dist(Config{0, 0}, Config{3, 4})
	test.That(t, d, test.ShouldAlmostEqual, 5.0)
}

func TestDistWrappedAngular6D(t *testing.T) {
	q1 := Config{0, 0, 0, 0, 0, math.Pi - 0.1}
	q2 := Config{0, 0, 0, 0, 0, -math.Pi + 0.1}
	d := Dist(q1, q2)
	test.That(t, d, test.ShouldAlmostEqual, 0.2)
}

func TestStepFromToBoundedByEpsilon(t *testing.T) {
	q1 := Config{0, 0}
	q2 := Config{10, 0}
	step := StepFromTo(q1, q2, 5, false)
	test.That(t, Dist(q1, step), test.ShouldAlmostEqual, 5.0)
}

func TestStepFromToIgnoreStepSize(t *testing.T) {
	q1 := Config{0, 0}
	q2 := Config{10, 0}
	step := StepFromTo(q1, q2, 1, true)
	test.That(t, step[0], test.ShouldAlmostEqual, 10.0)
}

func TestStepFromToIdentical(t *testing.T) {
	q1 := Config{1, 2}
	step := StepFromTo(q1, q1.Clone(), 5, false)
	test.That(t, step[0], test.ShouldAlmostEqual, 1.0)
	test.That(t, step[1], test.ShouldAlmostEqual, 2.0)
}

func TestRandUnitVectorIsUnit(t *testing.T) {
	//nolint:gosec
	src := rand.New(rand.NewSource(42))
	n := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	for d := 2; d <= 6; d += 2 {
		v := RandUnitVector(d, &n)
		norm := 0.0
		for _, x := range v {
			norm += x * x
		}
		test.That(t, math.Sqrt(norm), test.ShouldAlmostEqual, 1.0)
	}
}

func TestSupportSize(t *testing.T) {
	test.That(t, SupportSize(1), test.ShouldEqual, 61)
	test.That(t, SupportSize(2), test.ShouldEqual, 361)
	test.That(t, SupportSize(6), test.ShouldEqual, 361*25)
}
