// Package oracle implements the CollisionOracle contract and the concrete
// engines selectable by the `engine` configuration field: image (2-D
// occupancy grid), 4d (planar + wrapped angles), and klampt (6-D manipulator
// sweep). Collision oracles are deliberately minimal external collaborators;
// these exist so the planner has at least one runnable example of each
// configuration-space shape.
package oracle

import "github.com/jkwang1992/rrdtplan/spatial"

// CollisionOracle is the contract every engine implements.
type CollisionOracle interface {
	Dim() int
	Bounds() (low, high spatial.Config)
	Feasible(q spatial.Config) (bool, error)
	Visible(qa, qb spatial.Config) (bool, error)
	// ImageShape optionally reports the backing image's (w, h); only the
	// image engine implements it meaningfully.
	ImageShape() (w, h int, ok bool)
}
