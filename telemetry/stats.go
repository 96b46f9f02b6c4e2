// Package telemetry implements the run counters and CSV run log that a
// planner reports through: oracle call counts, sampler outcomes, and the
// current best path cost.
package telemetry

import "math"

// Stats holds every counter mutated during a run. It is owned by the
// top-level planner and passed by reference to every component that needs
// to report into it.
type Stats struct {
	// Oracle counters.
	FeasibleCount int
	VisibleCount  int

	// Invalid-sample counters.
	InvalidFeasibleCount int
	InvalidVisibleCount  int

	// ValidSample is the number of nodes actually added to a tree; a run
	// terminates once this reaches its node budget.
	ValidSample int

	// CMax is the current best path cost; math.Inf(1) until a path exists.
	CMax float64

	// SamplerSuccess/SamplerSuccessAll/SamplerFail and the restart/random-walk
	// counters give a fuller picture of sampler behaviour; they are additive
	// and do not change any planner semantics. RestartCount counts calls to
	// the particle restart routine. Nothing in the planner increments
	// RandomWalkCount; it stays 0.
	SamplerSuccess    int
	SamplerSuccessAll int
	SamplerFail       int
	RestartCount      int
	RandomWalkCount   int

	// OracleErrors counts CollisionOracle calls that returned a non-nil
	// error (treated as "not feasible"/"not visible" but counted here
	// separately for diagnosability).
	OracleErrors int
}

// NewStats returns a Stats with CMax initialized to infinity, matching the
// "c_max = infinity until a path is found" invariant.
func NewStats() *Stats {
	return &Stats{CMax: math.Inf(1)}
}

// AddFeasible records a feasibility check.
func (s *Stats) AddFeasible() { s.FeasibleCount++ }

// AddVisible records a visibility check.
func (s *Stats) AddVisible() { s.VisibleCount++ }

// AddFree records a sampled point that was feasible and got added to a tree.
func (s *Stats) AddFree() { s.ValidSample++ }

// AddInvalid records a failed feasibility (obstacleCheck=true) or visibility
// (obstacleCheck=false) check.
func (s *Stats) AddInvalid(obstacleCheck bool) {
	if obstacleCheck {
		s.InvalidFeasibleCount++
	} else {
		s.InvalidVisibleCount++
	}
}

// Done reports whether the run has reached its node budget.
func (s *Stats) Done(maxNumberNodes int) bool {
	return s.ValidSample >= maxNumberNodes
}
