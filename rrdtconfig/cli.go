package rrdtconfig

import (
	"github.com/urfave/cli/v2"
)

// Flags returns the urfave/cli/v2 flag set for the planner CLI surface:
// engine, image, start, goal, and the rest of the tunables.
func Flags() []cli.Flag {
	d := Default()
	return []cli.Flag{
		&cli.StringFlag{Name: "engine", Value: string(d.Engine), Usage: "oracle engine: image, 4d, or klampt"},
		&cli.StringFlag{Name: "image", Usage: "path to the occupancy-grid PNG (image/4d engines)"},
		&cli.StringFlag{Name: "start", Required: true, Usage: "start configuration, comma-separated floats"},
		&cli.StringFlag{Name: "goal", Required: true, Usage: "goal configuration, comma-separated floats"},
		&cli.Float64Flag{Name: "epsilon", Value: d.Epsilon, Usage: "step size"},
		&cli.Float64Flag{Name: "radius", Value: d.Radius, Usage: "RRT* rewire radius cap"},
		&cli.Float64Flag{Name: "goal-radius", Value: d.GoalRadius, Usage: "goal capture radius"},
		&cli.Float64Flag{Name: "goal-bias", Value: d.GoalBias, Usage: "goal bias in [0,1] (unused, see DESIGN.md)"},
		&cli.IntFlag{Name: "max-number-nodes", Value: d.MaxNumberNodes, Usage: "node budget"},
		&cli.BoolFlag{Name: "ignore-step-size", Usage: "step_from_to always returns q2 unmodified"},
		&cli.BoolFlag{Name: "save-output", Usage: "write a CSV telemetry log"},
		&cli.StringFlag{Name: "output-dir", Usage: "directory for the CSV telemetry log"},
		&cli.BoolFlag{Name: "no-display", Usage: "accepted for compatibility; this CLI has no visualiser"},
		&cli.StringFlag{
			Name:  "proposal",
			Value: d.ProposalDistribution,
			Usage: "directional proposal: original, dynamic-vonmises, or ray-casting",
		},
		&cli.BoolFlag{Name: "keep-go-forth", Usage: "enable ray-casting's momentum shortcut"},
		&cli.Int64Flag{Name: "seed", Usage: "fixed RNG seed (default: 0)"},
		&cli.StringFlag{Name: "options-json", Usage: "JSON object overlaying any of the above options"},
	}
}

// FromContext builds Options from a populated cli.Context.
func FromContext(c *cli.Context) (Options, error) {
	o := Default()
	o.Engine = Engine(c.String("engine"))
	o.ImagePath = c.String("image")
	o.StartPt = c.String("start")
	o.GoalPt = c.String("goal")
	o.Epsilon = c.Float64("epsilon")
	o.Radius = c.Float64("radius")
	o.GoalRadius = c.Float64("goal-radius")
	o.GoalBias = c.Float64("goal-bias")
	o.MaxNumberNodes = c.Int("max-number-nodes")
	o.IgnoreStepSize = c.Bool("ignore-step-size")
	o.SaveOutput = c.Bool("save-output")
	o.OutputDir = c.String("output-dir")
	o.NoDisplay = c.Bool("no-display")
	o.ProposalDistribution = c.String("proposal")
	o.KeepGoForth = c.Bool("keep-go-forth")
	if c.IsSet("seed") {
		seed := c.Int64("seed")
		o.Seed = &seed
	}

	if extra := c.String("options-json"); extra != "" {
		if err := o.MergeJSON([]byte(extra)); err != nil {
			return Options{}, err
		}
	}

	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}
