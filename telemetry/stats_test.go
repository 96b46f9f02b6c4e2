package telemetry

import (
	"bytes"
	"math"
	"testing"

	"go.viam.com/test"
)

func TestNewStatsCMaxIsInfinite(t *testing.T) {
	s := NewStats()
	test.That(t, math.IsInf(s.CMax, 1), test.ShouldBeTrue)
}

func TestAddInvalidRoutesToCorrectCounter(t *testing.T) {
	s := NewStats()
	s.AddInvalid(true)
	s.AddInvalid(false)
	test.That(t, s.InvalidFeasibleCount, test.ShouldEqual, 1)
	test.That(t, s.InvalidVisibleCount, test.ShouldEqual, 1)
}

func TestDoneAtBudget(t *testing.T) {
	s := NewStats()
	s.ValidSample = 500
	test.That(t, s.Done(500), test.ShouldBeTrue)
	test.That(t, s.Done(501), test.ShouldBeFalse)
}

func TestRunWriterHeaderAndRow(t *testing.T) {
	var buf bytes.Buffer
	rw, err := NewRunWriter(&buf)
	test.That(t, err, test.ShouldBeNil)

	s := NewStats()
	s.ValidSample = 3
	s.FeasibleCount = 10
	err = rw.WriteRow(s)
	test.That(t, err, test.ShouldBeNil)

	out := buf.String()
	test.That(t, out, test.ShouldContainSubstring, "nodes,time,cc_feasibility")
	test.That(t, out, test.ShouldContainSubstring, "inf")
}
