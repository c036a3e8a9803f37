// Package logging configures logrus for the benchmark binaries and tests and exposes a logr sink so
// that driver log messages are written through the same logger.
package logging

import (
	"os"

	"github.com/bombsimon/logrusr/v4"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Setup sets the level and formatter of the standard logrus logger.
func Setup(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return nil
}

// DriverSink returns a sink for the driver's logger options backed by the standard logrus logger.
func DriverSink() logr.LogSink {
	return logrusr.New(log.StandardLogger()).GetSink()
}
