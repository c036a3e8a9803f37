package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idealo/mongodb-driver-perf/compat"
	"github.com/idealo/mongodb-driver-perf/fixture"
	"github.com/idealo/mongodb-driver-perf/internal/config"
	"github.com/idealo/mongodb-driver-perf/internal/logging"
	"github.com/idealo/mongodb-driver-perf/perf"
)

const shutdownTimeout = 30 * time.Second

// NewRootCmd builds the mongoperf command tree. Without a subcommand it runs both suites.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mongoperf",
		Short: "MongoDB driver throughput benchmarks",
		Long: `mongoperf times insert, query and update loops against a MongoDB server
using the current (v2) and the legacy (v1) Go driver API.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuites(cmd, nil, perf.Run, compat.Run)
		},
	}

	flags := root.PersistentFlags()
	flags.String("uri", "", "MongoDB connection string (default "+config.DefaultURI+")")
	flags.String("env-file", ".env", "dotenv file to load before reading the environment")
	flags.String("config", "", "config file (default ./mongoperf.{yaml,json,toml} if present)")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.String(config.DriverLogLevelKey, "off", "driver log level routed to the logger (off, info, debug)")
	flags.Float64("scale", 1, "factor applied to every operation count")
	flags.Int("trials", 1, "number of times each benchmark is repeated")
	flags.String("csv", "", "prefix for CSV sample and summary files, empty disables CSV output")
	flags.Duration(config.ServerSelectionTimeoutKey, config.DefaultServerSelectionTimeout, "server selection timeout unless set in the URI")

	root.AddCommand(newPerfCmd(), newCompatCmd(), newListCmd())
	return root
}

// setup loads the environment, binds the flags and configures logging before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	envFile, _ := flags.GetString("env-file")
	if err := config.LoadEnv(envFile); err != nil {
		return err
	}
	if err := viper.BindPFlags(flags); err != nil {
		return err
	}
	if err := viper.BindPFlag(config.URIProperty, flags.Lookup("uri")); err != nil {
		return err
	}
	configFile, _ := flags.GetString("config")
	if err := config.ReadConfigFile(configFile); err != nil {
		return err
	}
	return logging.Setup(viper.GetString("log-level"))
}

// Execute runs the command line until it finishes or the process is interrupted, then releases both
// fixtures.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	shutdownFixtures()
	if err != nil {
		os.Exit(1)
	}
}

func shutdownFixtures() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := fixture.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to shut down the driver fixture")
	}
	if err := compat.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to shut down the legacy driver fixture")
	}
}
