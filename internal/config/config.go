// Package config resolves the settings shared by the benchmark fixtures and the command line.
//
// Values come from command line flags bound by the cmd package, the environment (optionally seeded
// from .env files), and an optional mongoperf config file, in that order of precedence.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// DefaultURI is used when no server address has been configured.
	DefaultURI = "mongodb://localhost:27017"
	// URIProperty is the config key naming the server under test. It is read from the
	// ORG_MONGODB_TEST_URI or MONGODB_URI environment variables.
	URIProperty = "org.mongodb.test.uri"

	ServerSelectionTimeoutKey     = "server-selection-timeout"
	DriverLogLevelKey             = "driver-log-level"
	DefaultServerSelectionTimeout = 30 * time.Second

	configName = "mongoperf"
)

func init() {
	viper.SetEnvPrefix(configName)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv(URIProperty, "ORG_MONGODB_TEST_URI", "MONGODB_URI")
	viper.SetDefault(ServerSelectionTimeoutKey, DefaultServerSelectionTimeout)
	viper.SetDefault(DriverLogLevelKey, "off")
}

// URI returns the connection string of the server under test.
func URI() string {
	uri := strings.TrimSpace(viper.GetString(URIProperty))
	if uri == "" {
		return DefaultURI
	}
	return uri
}

func ServerSelectionTimeout() time.Duration {
	d := viper.GetDuration(ServerSelectionTimeoutKey)
	if d <= 0 {
		return DefaultServerSelectionTimeout
	}
	return d
}

// DriverLogLevel returns "off", "info" or "debug".
func DriverLogLevel() string {
	switch level := strings.ToLower(strings.TrimSpace(viper.GetString(DriverLogLevelKey))); level {
	case "info", "debug":
		return level
	default:
		return "off"
	}
}

// LoadEnv loads the given .env files into the process environment. Files that do not exist are
// skipped and variables that are already set are left untouched.
func LoadEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if f == "" {
			continue
		}
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return errors.Wrap(godotenv.Load(existing...), "loading env files")
}

// ReadConfigFile reads path, or looks for mongoperf.{yaml,json,toml} in the working directory when
// path is empty. Not finding the default file is not an error.
func ReadConfigFile(path string) error {
	if path != "" {
		viper.SetConfigFile(path)
		return errors.Wrapf(viper.ReadInConfig(), "reading config file %s", path)
	}

	viper.SetConfigName(configName)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "reading config file")
	}
	return nil
}
