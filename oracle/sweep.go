package oracle

import "github.com/jkwang1992/rrdtplan/spatial"

// jointFeasible is the caller-supplied per-configuration predicate a
// SweepOracle checks against; it stands in for a real robot/world
// collision backend (e.g. Klamp't).
type jointFeasible func(q spatial.Config) bool

// SweepOracle is the `engine=klampt` oracle: a discrete sweep along the
// segment at a fixed 0.1 rad edge-check resolution, minus the actual
// Klamp't world/robot binding.
type SweepOracle struct {
	feasible   jointFeasible
	low, high  spatial.Config
	resolution float64
}

// NewSweepOracle builds a 6-DOF sweep oracle over feasible, bounded by
// low/high (per-joint limits).
func NewSweepOracle(feasible jointFeasible, low, high spatial.Config) *SweepOracle {
	return &SweepOracle{feasible: feasible, low: low, high: high, resolution: 0.1}
}

// Dim implements CollisionOracle.
func (o *SweepOracle) Dim() int { return 6 }

// Bounds implements CollisionOracle.
func (o *SweepOracle) Bounds() (low, high spatial.Config) {
	return o.low, o.high
}

// ImageShape implements CollisionOracle; the sweep oracle has no backing
// image.
func (o *SweepOracle) ImageShape() (int, int, bool) {
	return 0, 0, false
}

// Feasible implements CollisionOracle.
func (o *SweepOracle) Feasible(q spatial.Config) (bool, error) {
	for i, v := range q {
		if v < o.low[i] || v > o.high[i] {
			return false, nil
		}
	}
	return o.feasible(q), nil
}

// Visible implements CollisionOracle: discrete sweep from qa to qb at
// edge-check resolution 0.1 rad.
func (o *SweepOracle) Visible(qa, qb spatial.Config) (bool, error) {
	dist := spatial.Dist(qa, qb)
	steps := int(dist/o.resolution) + 1
	for s := 0; s <= steps; s++ {
		frac := float64(s) / float64(steps)
		q := make(spatial.Config, len(qa))
		for i := range qa {
			q[i] = qa[i] + frac*(qb[i]-qa[i])
		}
		ok, err := o.Feasible(q)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
