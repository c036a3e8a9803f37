package perf

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

const (
	numberOfQueryAllOperations          = 20000
	numberOfQueryAll100FieldsOperations = 2000
	numberOfDocuments                   = 1000
)

func queryAllDocumentsWithSingleStringField(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return queryAllDocuments(ctx, collection, config, "", bench.StringDocument(), numberOfQueryAllOperations)
}

func queryAllDocumentsWith100Fields(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return queryAllDocuments(ctx, collection, config, " 100 fields", bench.StringFieldsDocument(100), numberOfQueryAll100FieldsOperations)
}

// queryAllDocuments times full collection scans that read every populated document.
func queryAllDocuments(ctx context.Context, collection CollectionAPI, config bench.TestingConfig, suffix string, fields []bench.Field, operations int) ([]bench.Result, error) {
	if err := queryAllWarmup(ctx, collection, config); err != nil {
		return nil, err
	}
	if err := deleteAll(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to clear collection")
	}
	docs := config.Scaled(numberOfDocuments)
	if err := populate(ctx, collection, docs, document(fields)); err != nil {
		return nil, errors.Wrap(err, "failed to populate collection")
	}

	results := make([]bson.D, docs)
	name := fmt.Sprintf("Query %d Documents%s", docs, suffix)
	res, err := bench.Measure(ctx, name, config.Scaled(operations), func(int) error {
		return readAll(ctx, collection, results)
	})
	if err != nil {
		return nil, err
	}
	res.Print(config.Output())
	return []bench.Result{res}, nil
}

func queryAllWarmup(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) error {
	doc := document(bench.WarmupDocument())
	return bench.Warmup(ctx, config.Scaled(queryWarmupRuns), func(int) error {
		if _, err := collection.InsertOne(ctx, doc); err != nil {
			return err
		}
		cursor, err := collection.Find(ctx, bson.D{})
		if err != nil {
			return err
		}
		return cursor.Close(ctx)
	})
}

// readAll scans the collection and decodes exactly len(results) documents into results.
func readAll(ctx context.Context, collection CollectionAPI, results []bson.D) error {
	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for j := range results {
		if !cursor.Next(ctx) {
			if err := cursor.Err(); err != nil {
				return err
			}
			return errors.Errorf("cursor exhausted after %d of %d documents", j, len(results))
		}
		results[j] = nil
		if err := cursor.Decode(&results[j]); err != nil {
			return err
		}
	}
	return nil
}
