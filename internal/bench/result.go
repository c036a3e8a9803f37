package bench

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const summaryHeader = "Test,Ops per Second,Time Taken Millis, "

// Latency summarizes the per-operation timings of a measurement.
type Latency struct {
	Mean time.Duration
	P50  time.Duration
	P95  time.Duration
	P99  time.Duration
}

// Result is the outcome of one timed loop.
type Result struct {
	Name       string
	Operations int
	Elapsed    time.Duration
	Latency    Latency
	// Trial is the 1-based trial of the run when a case is repeated, 0 otherwise.
	Trial int
	// GroupRate prints the ops per second line with thousands separators.
	GroupRate bool
	// Samples holds one record per second of the timed loop plus a final record, in the column
	// order of SampleHeader.
	Samples [][]string
}

func (r Result) OpsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Operations) / r.Elapsed.Seconds()
}

func (r Result) Millis() int64 { return r.Elapsed.Milliseconds() }

// Print writes the throughput report of r to w.
func (r Result) Print(w io.Writer) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "Time taken: %d millis\n", r.Millis())
	p.Fprintf(w, "Test took: %.3f seconds\n", r.Elapsed.Seconds())
	if r.GroupRate {
		fmt.Fprintf(w, "%s ops per second\n", Grouped(r.OpsPerSecond(), 0))
	} else {
		fmt.Fprintf(w, "%.0f ops per second\n", r.OpsPerSecond())
	}
	fmt.Fprintln(w, summaryHeader)
	fmt.Fprintf(w, "%s,%.0f,%d, \n", r.Name, r.OpsPerSecond(), r.Millis())
}

// SummaryRecord returns r as a row of the summary CSV.
func (r Result) SummaryRecord() []string {
	return []string{r.Name, fmt.Sprintf("%.0f", r.OpsPerSecond()), fmt.Sprintf("%d", r.Millis())}
}

// Grouped formats v with thousands separators and the given number of decimals.
func Grouped(v float64, decimals int) string {
	format := fmt.Sprintf("%%.%df", decimals)
	return message.NewPrinter(language.English).Sprintf(format, v)
}
