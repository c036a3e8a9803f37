package bench

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// SampleHeader names the columns of Result.Samples.
var SampleHeader = []string{"timestamp", "count", "mean_rate", "m1_rate", "m5_rate", "m15_rate"}

// WriteSamples writes the per-second samples of r to <prefix>_<name>.csv, or
// <prefix>_<name>_trial<n>.csv for a repeated case, and returns the file name.
func WriteSamples(prefix string, r Result) (string, error) {
	records := append([][]string{SampleHeader}, r.Samples...)
	name := fileSafe(r.Name)
	if r.Trial > 0 {
		name = fmt.Sprintf("%s_trial%d", name, r.Trial)
	}
	return writeCSV(fmt.Sprintf("%s_%s.csv", prefix, name), records)
}

// WriteSummary writes one row per result to <prefix>_summary.csv and returns the file name.
func WriteSummary(prefix string, results []Result) (string, error) {
	records := [][]string{{"Test", "Ops per Second", "Time Taken Millis"}}
	for _, r := range results {
		records = append(records, r.SummaryRecord())
	}
	return writeCSV(prefix+"_summary.csv", records)
}

func writeCSV(filename string, records [][]string) (string, error) {
	file, err := os.Create(filename)
	if err != nil {
		return "", errors.Wrap(err, "failed to create CSV file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		return "", errors.Wrapf(err, "failed to write records to %s", filename)
	}
	return filename, nil
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return '_'
		}
	}, name)
}
