package compat

import (
	"context"

	"github.com/pkg/errors"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

const (
	numberOfInsertOperations = 10000
	insertWarmupRuns         = 10000
)

func insertString(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return insertDocument(ctx, collection, config, "Single String field", bench.StringDocument())
}

func insertDocumentWith100StringValueFields(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return insertDocument(ctx, collection, config, "100 String fields", bench.StringFieldsDocument(100))
}

func insertInt(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return insertDocument(ctx, collection, config, "Single int field", bench.IntDocument())
}

func insertDocumentWith100IntValueFields(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return insertDocument(ctx, collection, config, "100 Int Fields", bench.IntFieldsDocument(100))
}

// insertDocument times repeated inserts of one document.
func insertDocument(ctx context.Context, collection CollectionAPI, config bench.TestingConfig, name string, fields []bench.Field) ([]bench.Result, error) {
	doc := document(fields)
	err := bench.Warmup(ctx, config.Scaled(insertWarmupRuns), func(int) error {
		return insertOne(ctx, collection, doc)
	})
	if err != nil {
		return nil, err
	}
	if err := deleteAll(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to clear collection")
	}

	res, err := bench.Measure(ctx, name, config.Scaled(numberOfInsertOperations), func(int) error {
		return insertOne(ctx, collection, doc)
	})
	if err != nil {
		return nil, err
	}
	res.Print(config.Output())
	return []bench.Result{res}, nil
}
