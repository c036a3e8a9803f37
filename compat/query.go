package compat

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

const (
	numberOfQueryOperations = 20000
	queryWarmupRuns         = 10000
	queryPopulation         = 100
)

func querySingleDocumentWithSingleStringField(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return querySingleDocument(ctx, collection, config, "Query Single Document", bench.StringDocument())
}

func querySingleDocumentWith100Fields(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return querySingleDocument(ctx, collection, config, "Query Single Document 100 fields", bench.StringFieldsDocument(100))
}

func querySingleDocument(ctx context.Context, collection CollectionAPI, config bench.TestingConfig, name string, fields []bench.Field) ([]bench.Result, error) {
	warmup := document(bench.WarmupDocument())
	var found bson.Raw
	err := bench.Warmup(ctx, config.Scaled(queryWarmupRuns), func(int) error {
		if err := insertOne(ctx, collection, warmup); err != nil {
			return err
		}
		var err error
		found, err = collection.FindOne(ctx, bson.D{}).Raw()
		return err
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(config.Output(), found)

	if err := deleteAll(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to clear collection")
	}
	doc := document(fields)
	for i := 0; i < config.Scaled(queryPopulation); i++ {
		if err := insertOne(ctx, collection, doc); err != nil {
			return nil, errors.Wrap(err, "failed to populate collection")
		}
	}

	res, err := bench.Measure(ctx, name, config.Scaled(numberOfQueryOperations), func(int) error {
		var result bson.D
		return collection.FindOne(ctx, bson.D{}).Decode(&result)
	})
	if err != nil {
		return nil, err
	}
	res.Print(config.Output())
	return []bench.Result{res}, nil
}
