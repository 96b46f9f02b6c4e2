// Package spatial implements the configuration-space primitives shared by
// every planner subsystem: the distance metric, the bounded step function,
// and unit-sphere sampling used by the directional proposal distribution.
//
// A configuration is a plain []float64 of length 2, 4, or 6. For d=6 (the
// manipulator case) every dimension is a wrapped angular joint angle. For
// d=4 ("planar+angles") dimensions 0 and 1 are Euclidean and dimensions 2
// and 3 are wrapped. Any other d is Euclidean throughout.
package spatial

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Config is a point in configuration space.
type Config []float64

// Clone returns an independent copy of q.
func (q Config) Clone() Config {
	out := make(Config, len(q))
	copy(out, q)
	return out
}

// wrapAngular returns true if dimension i of a d-dimensional configuration
// is an angular (wrapped) coordinate.
func wrapAngular(d, i int) bool {
	switch d {
	case 6:
		return true
	case 4:
		return i >= 2
	default:
		return false
	}
}

// wrapPi wraps x into (-pi, pi].
func wrapPi(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}

// Dist computes d(q1,q2): Euclidean on non-angular coordinates, and the
// wrapped-angular norm ‖wrap(q2-q1, ±π)‖ contribution on angular ones,
// combined as a single Euclidean norm over the per-axis deltas.
func Dist(q1, q2 Config) float64 {
	d := len(q1)
	deltas := make([]float64, d)
	for i := 0; i < d; i++ {
		delta := q2[i] - q1[i]
		if wrapAngular(d, i) {
			delta = wrapPi(delta)
		}
		deltas[i] = delta
	}
	return floats.Norm(deltas, 2)
}

// StepFromTo returns a configuration at
// most epsilon away from q1, in the direction of q2.
func StepFromTo(q1, q2 Config, epsilon float64, ignoreStepSize bool) Config {
	if ignoreStepSize {
		return q2.Clone()
	}
	dist := Dist(q1, q2)
	if dist < 1e-12 {
		return q2.Clone()
	}
	step := math.Min(dist, epsilon)
	out := make(Config, len(q1))
	for i := range q1 {
		delta := q2[i] - q1[i]
		if wrapAngular(len(q1), i) {
			delta = wrapPi(delta)
		}
		out[i] = q1[i] + step*delta/dist
	}
	return out
}

// RandUnitVector draws a single unit vector in R^d via Gaussian-on-sphere
// sampling (v ~ N(0,I_d); v <- v/‖v‖), using rng as the single seeded
// source threaded through the whole planner for determinism.
func RandUnitVector(d int, rng *distuv.Normal) Config {
	v := make(Config, d)
	for i := range v {
		v[i] = rng.Rand()
	}
	n := floats.Norm(v, 2)
	if n < 1e-12 {
		v[0] = 1
		return v
	}
	floats.Scale(1/n, v)
	return v
}

// SupportSize returns the number of unit-direction samples S used to build
// a PMF support set: S = 361*(d-1)^2 for d>=2, 61 for d=1.
func SupportSize(d int) int {
	if d <= 1 {
		return 61
	}
	return 361 * (d - 1) * (d - 1)
}

// AddScaled returns q + scale*v.
func AddScaled(q Config, scale float64, v Config) Config {
	out := make(Config, len(q))
	for i := range q {
		out[i] = q[i] + scale*v[i]
	}
	return out
}
