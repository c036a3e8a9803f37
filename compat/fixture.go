// Package compat benchmarks the legacy generation of the MongoDB Go driver API.
//
// It carries its own fixture: a lazily connected client and a working database named GoDriverTest,
// both released by Shutdown.
package compat

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/multierr"

	"github.com/idealo/mongodb-driver-perf/internal/config"
	"github.com/idealo/mongodb-driver-perf/internal/logging"
)

const DatabaseName = "GoDriverTest"

var (
	mu              sync.Mutex
	mongoClient     *mongo.Client
	defaultDatabase *mongo.Database
)

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

func MongoClient(ctx context.Context) (*mongo.Client, error) {
	mu.Lock()
	defer mu.Unlock()
	return client(ctx)
}

func client(ctx context.Context) (*mongo.Client, error) {
	if mongoClient != nil {
		return mongoClient, nil
	}
	c, err := mongo.Connect(ctx, ClientOptions())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}
	mongoClient = c
	log.Debug("Created shared legacy MongoDB client")
	return mongoClient, nil
}

func DefaultDatabase(ctx context.Context) (*mongo.Database, error) {
	mu.Lock()
	defer mu.Unlock()

	if defaultDatabase == nil {
		c, err := client(ctx)
		if err != nil {
			return nil, err
		}
		defaultDatabase = c.Database(DatabaseName)
	}
	return defaultDatabase, nil
}

func Ping(ctx context.Context) error {
	c, err := MongoClient(ctx)
	if err != nil {
		return err
	}
	return errors.Wrap(c.Ping(ctx, readpref.Primary()), "ping")
}

// Shutdown drops GoDriverTest and disconnects, holding the fixture lock throughout so no caller can
// pick up a handle that is being torn down.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if mongoClient == nil {
		return nil
	}

	var err error
	if defaultDatabase != nil {
		if dropErr := defaultDatabase.Drop(ctx); dropErr != nil {
			err = multierr.Append(err, errors.Wrapf(dropErr, "failed to drop database %s", DatabaseName))
		}
	}
	if discErr := mongoClient.Disconnect(ctx); discErr != nil {
		err = multierr.Append(err, errors.Wrap(discErr, "failed to disconnect"))
	}

	mongoClient = nil
	defaultDatabase = nil
	return err
}
