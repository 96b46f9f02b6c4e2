// Command rrdtplan loads an engine, builds a planner, runs it to the node
// budget, and reports the solution path (or the relevant non-zero exit
// code on failure).
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jkwang1992/rrdtplan/oracle"
	"github.com/jkwang1992/rrdtplan/rplog"
	"github.com/jkwang1992/rrdtplan/rrdt"
	"github.com/jkwang1992/rrdtplan/rrdtconfig"
	"github.com/jkwang1992/rrdtplan/telemetry"
)

func main() {
	app := &cli.App{
		Name:  "rrdtplan",
		Usage: "plan a path with the RRdT disjoint-tree planner",
		Flags: rrdtconfig.Flags(),
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}
	if err := app.Run(os.Args); err != nil {
		// HandleExitCoder exits the process itself for any error carrying an
		// exit code (configuration and start/goal errors, via cli.Exit);
		// anything else (logger and telemetry I/O errors, flag parsing
		// errors) falls through to a generic non-zero exit.
		cli.HandleExitCoder(err)
		fmt.Fprintln(os.Stderr, "rrdtplan:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger, err := rplog.NewDevelopment()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	opts, err := rrdtconfig.FromContext(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	o, err := buildOracle(opts)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	start, err := rrdtconfig.ParseConfig(opts.StartPt)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	goal, err := rrdtconfig.ParseConfig(opts.GoalPt)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	env, err := rrdt.NewEnv(o, opts.ToPlannerConfig(), start, goal, logger.Named("rrdt"))
	if err != nil {
		switch {
		case errors.Is(err, rrdt.ErrStartNotFeasible), errors.Is(err, rrdt.ErrGoalNotFeasible):
			return cli.Exit(err.Error(), 3)
		default:
			return cli.Exit(err.Error(), 2)
		}
	}

	var runWriter *telemetry.RunWriter
	if opts.SaveOutput {
		dir := opts.OutputDir
		if dir == "" {
			dir = "."
		}
		name, err := telemetry.NextRunFilename(dir, time.Now())
		if err != nil {
			return fmt.Errorf("choosing output filename: %w", err)
		}
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("creating telemetry file: %w", err)
		}
		defer f.Close()
		runWriter, err = telemetry.NewRunWriter(f)
		if err != nil {
			return fmt.Errorf("writing telemetry header: %w", err)
		}
		logger.Infow("writing telemetry", "path", name)
	}

	lastValid := env.Stats.ValidSample
	for !env.Stats.Done(env.Config.MaxNumberNodes) {
		env.RunOnce()
		if runWriter != nil && env.Stats.ValidSample > lastValid {
			lastValid = env.Stats.ValidSample
			if err := runWriter.WriteRow(env.Stats); err != nil {
				return fmt.Errorf("writing telemetry row: %w", err)
			}
		}
	}
	logger.Infow("run complete", "valid_sample", env.Stats.ValidSample, "c_max", env.Root.CMax)

	path := env.GetSolutionPath()
	if path == nil {
		fmt.Println("no path found")
		return nil
	}
	for _, q := range path {
		fmt.Println(q)
	}
	return nil
}

// buildOracle constructs the CollisionOracle named by opts.Engine.
func buildOracle(opts rrdtconfig.Options) (oracle.CollisionOracle, error) {
	switch opts.Engine {
	case rrdtconfig.EngineImage:
		return oracle.LoadImageOracleFile(opts.ImagePath)
	case rrdtconfig.Engine4D:
		img, err := oracle.LoadImageOracleFile(opts.ImagePath)
		if err != nil {
			return nil, err
		}
		return oracle.NewPlanarOracle(img), nil
	case rrdtconfig.EngineKlampt:
		return nil, errors.New("engine=klampt has no Klamp't world/robot binding in this build; " +
			"supply a CollisionOracle programmatically via the rrdt package instead of the CLI")
	default:
		return nil, fmt.Errorf("unknown engine %q", opts.Engine)
	}
}
