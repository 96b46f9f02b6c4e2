package rrdtconfig

import (
	"flag"
	"testing"

	"github.com/urfave/cli/v2"
	"go.viam.com/test"
)

func buildContext(t *testing.T, args []string) *cli.Context {
	t.Helper()
	app := &cli.App{Flags: Flags()}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		if err := f.Apply(fs); err != nil {
			t.Fatalf("applying flags: %v", err)
		}
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parsing args: %v", err)
	}
	return cli.NewContext(app, fs, nil)
}

func TestFromContextBuildsValidatedOptions(t *testing.T) {
	c := buildContext(t, []string{
		"--engine", "image",
		"--image", "map.png",
		"--start", "0,0",
		"--goal", "10,10",
		"--epsilon", "3.5",
		"--seed", "5",
	})
	o, err := FromContext(c)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.Engine, test.ShouldEqual, EngineImage)
	test.That(t, o.Epsilon, test.ShouldAlmostEqual, 3.5)
	test.That(t, o.Seed, test.ShouldNotBeNil)
	test.That(t, *o.Seed, test.ShouldEqual, int64(5))
}

func TestFromContextRejectsInvalidOptions(t *testing.T) {
	c := buildContext(t, []string{
		"--engine", "bogus",
		"--start", "0,0",
		"--goal", "10,10",
	})
	_, err := FromContext(c)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFromContextAppliesOptionsJSONOverlay(t *testing.T) {
	c := buildContext(t, []string{
		"--image", "map.png",
		"--start", "0,0",
		"--goal", "10,10",
		"--options-json", `{"epsilon": 99}`,
	})
	o, err := FromContext(c)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, o.Epsilon, test.ShouldAlmostEqual, 99.0)
}
