package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// CSVHeader is the column header for the run log.
var CSVHeader = []string{
	"nodes", "time", "cc_feasibility", "cc_visibility",
	"invalid_feasibility", "invalid_visibility", "c_max",
}

// RunWriter appends one CSV row per valid-sample increment to an underlying
// writer.
type RunWriter struct {
	w     *csv.Writer
	start time.Time
}

// NewRunWriter wraps w, writing the CSV header immediately.
func NewRunWriter(w io.Writer) (*RunWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv header: %w", err)
	}
	return &RunWriter{w: cw, start: time.Now()}, nil
}

// WriteRow appends one telemetry row for the current Stats snapshot.
func (rw *RunWriter) WriteRow(s *Stats) error {
	cMax := "inf"
	if !isInf(s.CMax) {
		cMax = strconv.FormatFloat(s.CMax, 'f', -1, 64)
	}
	row := []string{
		strconv.Itoa(s.ValidSample),
		strconv.FormatFloat(time.Since(rw.start).Seconds(), 'f', 6, 64),
		strconv.Itoa(s.FeasibleCount),
		strconv.Itoa(s.VisibleCount),
		strconv.Itoa(s.InvalidFeasibleCount),
		strconv.Itoa(s.InvalidVisibleCount),
		cMax,
	}
	if err := rw.w.Write(row); err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}
	rw.w.Flush()
	return rw.w.Error()
}

func isInf(f float64) bool {
	return f > 1e300 || f < -1e300
}

// NextRunFilename picks a timestamped filename "YYYY-MM-DD_HH-MM[.n].csv"
// where [.n] is the first suffix that does not already exist in dir.
func NextRunFilename(dir string, now time.Time) (string, error) {
	base := now.Format("2006-01-02_15-04")
	candidate := filepath.Join(dir, base+".csv")
	if _, err := os.Stat(candidate); os.IsNotExist(err) {
		return candidate, nil
	}
	for n := 1; ; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s.%d.csv", base, n))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
}
