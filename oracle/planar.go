package oracle

import "github.com/jkwang1992/rrdtplan/spatial"

// PlanarOracle is the `engine=4d` oracle (planar position plus two wrapped
// angles): the first two coordinates are checked against an underlying 2-D
// occupancy grid (an *ImageOracle), and the remaining two wrapped-angular
// coordinates are unconstrained (no angular obstacle model is in scope
// here). This is enough to exercise the d=4 distance/step path end to end
// without inventing an arm geometry checker.
type PlanarOracle struct {
	planar *ImageOracle
}

// NewPlanarOracle wraps planar, an occupancy grid checked against the
// config's first two (Euclidean) coordinates.
func NewPlanarOracle(planar *ImageOracle) *PlanarOracle {
	return &PlanarOracle{planar: planar}
}

// Dim implements CollisionOracle.
func (o *PlanarOracle) Dim() int { return 4 }

// Bounds implements CollisionOracle.
func (o *PlanarOracle) Bounds() (low, high spatial.Config) {
	pl, ph := o.planar.Bounds()
	return spatial.Config{pl[0], pl[1], -3.141592653589793, -3.141592653589793},
		spatial.Config{ph[0], ph[1], 3.141592653589793, 3.141592653589793}
}

// ImageShape implements CollisionOracle, deferring to the underlying grid.
func (o *PlanarOracle) ImageShape() (int, int, bool) {
	return o.planar.ImageShape()
}

// Feasible implements CollisionOracle.
func (o *PlanarOracle) Feasible(q spatial.Config) (bool, error) {
	return o.planar.Feasible(spatial.Config{q[0], q[1]})
}

// Visible implements CollisionOracle.
func (o *PlanarOracle) Visible(qa, qb spatial.Config) (bool, error) {
	return o.planar.Visible(spatial.Config{qa[0], qa[1]}, spatial.Config{qb[0], qb[1]})
}
