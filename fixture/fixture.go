// Package fixture provides the client and working database shared by the current API benchmarks.
//
// Both handles are created on first use and live until Shutdown, which drops the working database
// and disconnects the client. Test binaries call Shutdown from TestMain, the mongoperf command calls
// it before exiting.
package fixture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/multierr"

	"github.com/idealo/mongodb-driver-perf/internal/config"
	"github.com/idealo/mongodb-driver-perf/internal/logging"
)

// DatabasePrefix starts the name of every working database.
const DatabasePrefix = "DriverTest-"

var (
	mu              sync.Mutex
	mongoClient     *mongo.Client
	defaultDatabase *mongo.Database
)

// ClientOptions builds the options used to connect to the configured server.
func ClientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(config.URI())
	if opts.ServerSelectionTimeout == nil {
		opts.SetServerSelectionTimeout(config.ServerSelectionTimeout())
	}

	var level options.LogLevel
	switch config.DriverLogLevel() {
	case "info":
		level = options.LogLevelInfo
	case "debug":
		level = options.LogLevelDebug
	default:
		return opts
	}
	return opts.SetLoggerOptions(options.Logger().
		SetSink(logging.DriverSink()).
		SetComponentLevel(options.LogComponentAll, level))
}

// MongoClient returns the shared client, connecting it on first use.
func MongoClient() (*mongo.Client, error) {
	mu.Lock()
	defer mu.Unlock()
	return client()
}

func client() (*mongo.Client, error) {
	if mongoClient == nil {
		c, err := mongo.Connect(ClientOptions())
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to MongoDB")
		}
		mongoClient = c
		log.Debug("Created shared MongoDB client")
	}
	return mongoClient, nil
}

// DefaultDatabase returns the working database of this process. Its name is unique per process.
func DefaultDatabase() (*mongo.Database, error) {
	mu.Lock()
	defer mu.Unlock()

	if defaultDatabase == nil {
		c, err := client()
		if err != nil {
			return nil, err
		}
		defaultDatabase = c.Database(fmt.Sprintf("%s%d", DatabasePrefix, time.Now().UnixNano()))
		log.WithField("database", defaultDatabase.Name()).Debug("Selected working database")
	}
	return defaultDatabase, nil
}

// Ping checks that the configured server answers.
func Ping(ctx context.Context) error {
	c, err := MongoClient()
	if err != nil {
		return err
	}
	return errors.Wrap(c.Ping(ctx, readpref.Primary()), "ping")
}

// Shutdown drops the working database, disconnects the client and forgets both handles. It does
// nothing when no client was created. Handles are released even when dropping or disconnecting
// fails.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if mongoClient == nil {
		return nil
	}

	var err error
	if defaultDatabase != nil {
		if dropErr := defaultDatabase.Drop(ctx); dropErr != nil {
			err = multierr.Append(err, errors.Wrapf(dropErr, "failed to drop database %s", defaultDatabase.Name()))
		}
	}
	if discErr := mongoClient.Disconnect(ctx); discErr != nil {
		err = multierr.Append(err, errors.Wrap(discErr, "failed to disconnect"))
	}

	mongoClient = nil
	defaultDatabase = nil
	return err
}
