package compat

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

type Benchmark = bench.Case[CollectionAPI]

// Benchmarks returns all legacy API cases in the order they run.
func Benchmarks() []Benchmark {
	return []Benchmark{
		{Name: "InsertString", Group: "compat.InsertPerformanceTest", Run: insertString},
		{Name: "InsertDocumentWith100StringValueFields", Group: "compat.InsertPerformanceTest", Run: insertDocumentWith100StringValueFields},
		{Name: "InsertInt", Group: "compat.InsertPerformanceTest", Run: insertInt},
		{Name: "InsertDocumentWith100IntValueFields", Group: "compat.InsertPerformanceTest", Run: insertDocumentWith100IntValueFields},
		{Name: "QuerySingleDocumentWithSingleStringField", Group: "compat.QueryPerformanceTest", Run: querySingleDocumentWithSingleStringField},
		{Name: "QuerySingleDocumentWith100Fields", Group: "compat.QueryPerformanceTest", Run: querySingleDocumentWith100Fields},
	}
}

func Select(names []string) ([]Benchmark, error) {
	return bench.Select(Benchmarks(), names)
}

// Run executes the named legacy cases, or all of them, against GoDriverTest.
func Run(ctx context.Context, config bench.TestingConfig, names []string) ([]bench.Result, error) {
	selected, err := Select(names)
	if err != nil {
		return nil, err
	}
	db, err := DefaultDatabase(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get default database")
	}
	log.Infof("Running %d legacy benchmarks against database %s", len(selected), db.Name())

	newCollection := func(group string) CollectionAPI {
		return &MongoDBCollection{Collection: db.Collection(group)}
	}
	return bench.RunSuite(ctx, selected, config, newCollection, db.Drop)
}
