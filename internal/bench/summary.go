package bench

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// TrialSummary aggregates the throughput of repeated runs of the same case.
type TrialSummary struct {
	Name   string
	Trials int
	Median float64
	Min    float64
	Max    float64
}

// Summarize computes median, minimum and maximum operations per second over trials.
func Summarize(name string, trials []Result) (TrialSummary, error) {
	rates := make(stats.Float64Data, 0, len(trials))
	for _, t := range trials {
		rates = append(rates, t.OpsPerSecond())
	}

	median, err := stats.Median(rates)
	if err != nil {
		return TrialSummary{}, errors.Wrapf(err, "summarizing %s", name)
	}
	min, err := stats.Min(rates)
	if err != nil {
		return TrialSummary{}, errors.Wrapf(err, "summarizing %s", name)
	}
	max, err := stats.Max(rates)
	if err != nil {
		return TrialSummary{}, errors.Wrapf(err, "summarizing %s", name)
	}

	return TrialSummary{Name: name, Trials: len(trials), Median: median, Min: min, Max: max}, nil
}

func (s TrialSummary) Print(w io.Writer) {
	fmt.Fprintf(w, "%s: %d trials, median %s ops per second (min %s, max %s)\n",
		s.Name, s.Trials, Grouped(s.Median, 0), Grouped(s.Min, 0), Grouped(s.Max, 0))
}
