package cmd

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

type suite func(ctx context.Context, config bench.TestingConfig, names []string) ([]bench.Result, error)

func testingConfig(out io.Writer) bench.TestingConfig {
	return bench.TestingConfig{
		Scale:            viper.GetFloat64("scale"),
		Trials:           viper.GetInt("trials"),
		OutputFilePrefix: viper.GetString("csv"),
		Out:              out,
	}
}

// runSuites runs each suite in turn and writes the CSV output for everything that completed, also
// when a suite fails.
func runSuites(cmd *cobra.Command, names []string, suites ...suite) error {
	config := testingConfig(cmd.OutOrStdout())

	var all []bench.Result
	var runErr error
	for _, s := range suites {
		results, err := s(cmd.Context(), config, names)
		all = append(all, results...)
		if err != nil {
			runErr = err
			break
		}
	}

	if err := writeCSV(config.OutputFilePrefix, all); err != nil {
		if runErr == nil {
			return err
		}
		log.WithError(err).Error("Failed to write CSV output")
	}
	return runErr
}

func writeCSV(prefix string, results []bench.Result) error {
	if prefix == "" || len(results) == 0 {
		return nil
	}
	for _, r := range results {
		filename, err := bench.WriteSamples(prefix, r)
		if err != nil {
			return err
		}
		log.Debugf("Wrote samples to %s", filename)
	}
	filename, err := bench.WriteSummary(prefix, results)
	if err != nil {
		return err
	}
	log.Infof("Wrote summary to %s", filename)
	return nil
}
