package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/idealo/mongodb-driver-perf/compat"
	"github.com/idealo/mongodb-driver-perf/perf"
)

func newPerfCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "perf",
		Short: "Run the current driver API benchmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, _ := cmd.Flags().GetStringSlice("bench")
			return runSuites(cmd, names, perf.Run)
		},
	}
	c.Flags().StringSlice("bench", nil, "benchmarks to run (comma separated, see list)")
	return c
}

func newCompatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "compat",
		Short: "Run the legacy driver API benchmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, _ := cmd.Flags().GetStringSlice("bench")
			return runSuites(cmd, names, compat.Run)
		},
	}
	c.Flags().StringSlice("bench", nil, "benchmarks to run (comma separated, see list)")
	return c
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the benchmark names of both suites",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "perf:")
			for _, b := range perf.Benchmarks() {
				fmt.Fprintf(out, "  %s\n", b.Name)
			}
			fmt.Fprintln(out, "compat:")
			for _, b := range compat.Benchmarks() {
				fmt.Fprintf(out, "  %s\n", b.Name)
			}
		},
	}
}
