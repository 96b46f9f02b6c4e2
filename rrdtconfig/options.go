// Package rrdtconfig is the thin configuration layer: CLI flag parsing,
// validation, and translation into the core rrdt.Config/oracle selection.
package rrdtconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jkwang1992/rrdtplan/rrdt"
	"github.com/jkwang1992/rrdtplan/spatial"
)

// Engine selects the oracle/distance pairing.
type Engine string

const (
	EngineImage  Engine = "image"
	Engine4D     Engine = "4d"
	EngineKlampt Engine = "klampt"
)

// Options is the typed configuration object driving a run: engine
// selection, start/goal, and every planner tunable.
type Options struct {
	Engine               Engine  `json:"engine"`
	ImagePath            string  `json:"image"`
	StartPt              string  `json:"start_pt"`
	GoalPt               string  `json:"goal_pt"`
	Epsilon              float64 `json:"epsilon"`
	Radius               float64 `json:"radius"`
	GoalRadius           float64 `json:"goal_radius"`
	GoalBias             float64 `json:"goal_bias"`
	MaxNumberNodes       int     `json:"max_number_nodes"`
	IgnoreStepSize       bool    `json:"ignore_step_size"`
	SaveOutput           bool    `json:"save_output"`
	OutputDir            string  `json:"output_dir"`
	NoDisplay            bool    `json:"no_display"`
	ProposalDistribution string  `json:"rrdt_proposal_distribution"`
	KeepGoForth          bool    `json:"keep_go_forth"`
	Seed                 *int64  `json:"seed,omitempty"`
}

// Default returns an Options populated with the reference planner's
// defaults, overridable by flags or an --options-json overlay.
func Default() Options {
	return Options{
		Engine:               EngineImage,
		Epsilon:              10.0,
		Radius:               15.0,
		GoalRadius:           10.0,
		GoalBias:             0,
		MaxNumberNodes:       2000,
		ProposalDistribution: "dynamic-vonmises",
	}
}

// MergeJSON overlays extra (a JSON object of option overrides) onto o.
func (o *Options) MergeJSON(extra []byte) error {
	if len(extra) == 0 {
		return nil
	}
	return json.Unmarshal(extra, o)
}

// errConfiguration is the configuration-error sentinel; Validate wraps it
// with details via fmt.Errorf's %w.
var errConfiguration = errors.New("rrdtconfig: configuration error")

// Validate checks dimensionality/range constraints required before a run
// starts.
func (o Options) Validate() error {
	switch o.Engine {
	case EngineImage, Engine4D, EngineKlampt:
	default:
		return fmt.Errorf("%w: unknown engine %q", errConfiguration, o.Engine)
	}
	if o.ImagePath == "" && o.Engine != EngineKlampt {
		return fmt.Errorf("%w: missing image path", errConfiguration)
	}
	if o.Epsilon <= 0 {
		return fmt.Errorf("%w: epsilon must be positive", errConfiguration)
	}
	if o.MaxNumberNodes <= 0 {
		return fmt.Errorf("%w: max_number_nodes must be positive", errConfiguration)
	}
	if o.GoalBias < 0 || o.GoalBias > 1 {
		return fmt.Errorf("%w: goal_bias must be in [0,1]", errConfiguration)
	}
	switch o.ProposalDistribution {
	case "original", "dynamic-vonmises", "ray-casting", "":
	default:
		return fmt.Errorf("%w: unknown proposal distribution %q", errConfiguration, o.ProposalDistribution)
	}
	if _, err := ParseConfig(o.StartPt); err != nil {
		return fmt.Errorf("%w: start_pt: %v", errConfiguration, err)
	}
	if _, err := ParseConfig(o.GoalPt); err != nil {
		return fmt.Errorf("%w: goal_pt: %v", errConfiguration, err)
	}
	return nil
}

// ParseConfig parses a comma-separated list of floats into a
// spatial.Config.
func ParseConfig(s string) (spatial.Config, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New("empty configuration")
	}
	parts := strings.Split(s, ",")
	q := make(spatial.Config, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing component %d (%q): %w", i, part, err)
		}
		q[i] = v
	}
	return q, nil
}

// proposalMode maps the CLI string to rrdt's ProposalMode.
func (o Options) proposalMode() rrdt.ProposalMode {
	switch o.ProposalDistribution {
	case "original":
		return rrdt.ProposalOriginal
	case "ray-casting":
		return rrdt.ProposalRayCasting
	default:
		return rrdt.ProposalDynamicVonMises
	}
}

// ToPlannerConfig translates validated Options into rrdt.Config.
func (o Options) ToPlannerConfig() rrdt.Config {
	var seed int64
	if o.Seed != nil {
		seed = *o.Seed
	}
	return rrdt.Config{
		Epsilon:        o.Epsilon,
		Radius:         o.Radius,
		GoalRadius:     o.GoalRadius,
		GoalBias:       o.GoalBias,
		MaxNumberNodes: o.MaxNumberNodes,
		IgnoreStepSize: o.IgnoreStepSize,
		Proposal:       o.proposalMode(),
		KeepGoForth:    o.KeepGoForth,
		Seed:           seed,
	}
}
