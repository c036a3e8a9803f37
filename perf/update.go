package perf

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

const (
	numberOfUpdateOperations = 20000
	updateWarmupRuns         = 10000
)

var newField = bson.D{{Key: "$set", Value: bson.D{{Key: "new field", Value: "new value"}}}}

func updateSingleDocumentWithSingleStringField(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	doc := document(bench.WarmupDocument())
	err := bench.Warmup(ctx, config.Scaled(updateWarmupRuns), func(int) error {
		if _, err := collection.InsertOne(ctx, doc); err != nil {
			return err
		}
		_, err := collection.UpdateOne(ctx, doc, newField)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := deleteAll(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to clear collection")
	}

	ops := config.Scaled(numberOfUpdateOperations)
	for i := 0; i < ops; i++ {
		if _, err := collection.InsertOne(ctx, bson.D{{Key: "_id", Value: i}, {Key: "name", Value: "String value"}}); err != nil {
			return nil, errors.Wrap(err, "failed to populate collection")
		}
	}
	bench.CollectGarbage()

	res, err := bench.Measure(ctx, "Update Single Document", ops, func(i int) error {
		_, err := collection.UpdateOne(ctx, bson.D{{Key: "_id", Value: i}}, newField)
		return err
	})
	if err != nil {
		return nil, err
	}
	res.Print(config.Output())
	return []bench.Result{res}, nil
}
