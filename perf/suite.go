package perf

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/idealo/mongodb-driver-perf/fixture"
	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

// Run executes the named cases, or every case when names is empty, against the fixture database.
// Each trial of each case gets a freshly dropped collection and the database is dropped afterwards.
// Results of the cases that completed are returned together with the first error.
func Run(ctx context.Context, config bench.TestingConfig, names []string) ([]bench.Result, error) {
	selected, err := Select(names)
	if err != nil {
		return nil, err
	}
	db, err := fixture.DefaultDatabase()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get default database")
	}
	log.Infof("Running %d benchmarks against database %s", len(selected), db.Name())

	newCollection := func(group string) CollectionAPI {
		return &MongoDBCollection{Collection: db.Collection(group)}
	}
	return bench.RunSuite(ctx, selected, config, newCollection, db.Drop)
}
