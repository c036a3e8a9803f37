// Package bench holds the driver independent parts of the benchmark harness: run configuration,
// the warm-up and measurement loops, and result reporting.
package bench

import (
	"io"
	"math"
	"os"
)

// TestingConfig controls how much work each benchmark case does and where its output goes.
type TestingConfig struct {
	// Scale multiplies every warm-up, population and operation count of a case. Values <= 0 mean 1.
	Scale float64
	// Trials is the number of times the suite runs each case. Values < 1 mean 1.
	Trials int
	// OutputFilePrefix enables CSV output when not empty.
	OutputFilePrefix string
	// Out receives the printed reports. Nil means stdout.
	Out io.Writer
}

// Scaled returns n adjusted by the configured scale, never less than 1.
func (c TestingConfig) Scaled(n int) int {
	s := c.Scale
	if s <= 0 {
		s = 1
	}
	v := int(math.Round(float64(n) * s))
	if v < 1 {
		return 1
	}
	return v
}

func (c TestingConfig) TrialCount() int {
	if c.Trials < 1 {
		return 1
	}
	return c.Trials
}

func (c TestingConfig) Output() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}
