package rrdt

import "errors"

// Sentinel errors for configuration failures. Everything else (oracle
// errors, join inconsistencies) is absorbed locally and never propagated as
// an error value. Exported so callers (in particular cmd/rrdtplan) can
// distinguish "infeasible start/goal" from any other configuration error
// via errors.Is.
var (
	// ErrStartNotFeasible is returned by NewEnv when the start configuration
	// fails the oracle's feasibility check.
	ErrStartNotFeasible = errors.New("rrdt: start configuration not feasible")

	// ErrGoalNotFeasible is returned by NewEnv when the goal configuration
	// fails the oracle's feasibility check.
	ErrGoalNotFeasible = errors.New("rrdt: goal configuration not feasible")

	// ErrDimMismatch is returned when a configuration's length does not
	// match the oracle's declared dimension.
	ErrDimMismatch = errors.New("rrdt: configuration dimension mismatch")

	// ErrNoOracle is returned by NewEnv when constructed without a
	// collision oracle.
	ErrNoOracle = errors.New("rrdt: no collision oracle provided")
)
