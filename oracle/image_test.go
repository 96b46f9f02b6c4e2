package oracle

import (
	"testing"

	"go.viam.com/test"

	"github.com/jkwang1992/rrdtplan/spatial"
)

func emptyGrid(w, h int) [][]bool {
	g := make([][]bool, w)
	for x := range g {
		g[x] = make([]bool, h)
		for y := range g[x] {
			g[x][y] = true
		}
	}
	return g
}

func TestImageOracleFeasibleOutOfBounds(t *testing.T) {
	o := NewImageOracleFromGrid(emptyGrid(10, 10))
	ok, err := o.Feasible(spatial.Config{-1, 5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestImageOracleVisibleEmptyMap(t *testing.T) {
	o := NewImageOracleFromGrid(emptyGrid(100, 100))
	ok, err := o.Visible(spatial.Config{10, 10}, spatial.Config{90, 90})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestImageOracleVisibleWallBlocks(t *testing.T) {
	grid := emptyGrid(100, 100)
	for y := 0; y < 100; y++ {
		if y < 45 || y > 55 {
			grid[50][y] = false
		}
	}
	o := NewImageOracleFromGrid(grid)

	ok, err := o.Visible(spatial.Config{10, 50}, spatial.Config{90, 50})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue) // passes through the gap at y=50

	ok, err = o.Visible(spatial.Config{10, 10}, spatial.Config{90, 10})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse) // blocked by the wall
}

func TestPlanarOracleIgnoresAngularObstacles(t *testing.T) {
	base := NewImageOracleFromGrid(emptyGrid(10, 10))
	o := NewPlanarOracle(base)
	ok, err := o.Feasible(spatial.Config{5, 5, 3, -3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
}

func TestSweepOracleRejectsOutOfBounds(t *testing.T) {
	low := spatial.Config{-1, -1, -1, -1, -1, -1}
	high := spatial.Config{1, 1, 1, 1, 1, 1}
	o := NewSweepOracle(func(spatial.Config) bool { return true }, low, high)
	ok, err := o.Feasible(spatial.Config{0, 0, 0, 0, 0, 5})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestSweepOracleVisibleSweepsAllSteps(t *testing.T) {
	low := spatial.Config{-10, -10, -10, -10, -10, -10}
	high := spatial.Config{10, 10, 10, 10, 10, 10}
	blockAt := spatial.Config{0.5, 0, 0, 0, 0, 0}
	o := NewSweepOracle(func(q spatial.Config) bool {
		return spatial.Dist(q, blockAt) > 0.05
	}, low, high)

	qa := spatial.Config{0, 0, 0, 0, 0, 0}
	qb := spatial.Config{1, 0, 0, 0, 0, 0}
	ok, err := o.Visible(qa, qb)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)
}
