package perf

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

const (
	numberOfQueryOperations = 200000
	queryWarmupRuns         = 10000
	queryPopulation         = 100
)

var errNoDocument = errors.New("query returned no document")

func querySingleDocumentWithSingleStringField(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return querySingleDocument(ctx, collection, config, "Query Single Document", bench.StringDocument())
}

func querySingleDocumentWith100Fields(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return querySingleDocument(ctx, collection, config, "Query Single Document 100 fields", bench.StringFieldsDocument(100))
}

func querySingleDocument(ctx context.Context, collection CollectionAPI, config bench.TestingConfig, name string, fields []bench.Field) ([]bench.Result, error) {
	if err := queryWarmup(ctx, collection, config); err != nil {
		return nil, err
	}
	if err := deleteAll(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to clear collection")
	}
	if err := populate(ctx, collection, config.Scaled(queryPopulation), document(fields)); err != nil {
		return nil, errors.Wrap(err, "failed to populate collection")
	}

	ops := config.Scaled(numberOfQueryOperations)
	found := make([]bson.D, ops)
	res, err := bench.Measure(ctx, name, ops, func(i int) error {
		return findFirst(ctx, collection, &found[i])
	})
	if err != nil {
		return nil, err
	}
	res.Print(config.Output())
	return []bench.Result{res}, nil
}

// queryWarmup inserts the warm-up document and reads one document back, printing the last one read.
func queryWarmup(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) error {
	doc := document(bench.WarmupDocument())
	var found bson.Raw
	err := bench.Warmup(ctx, config.Scaled(queryWarmupRuns), func(int) error {
		if _, err := collection.InsertOne(ctx, doc); err != nil {
			return err
		}
		var err error
		found, err = collection.FindOne(ctx, bson.D{}).Raw()
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(config.Output(), found)
	return nil
}

// findFirst runs a find limited to one document and decodes the first result into doc.
func findFirst(ctx context.Context, collection CollectionAPI, doc *bson.D) error {
	cursor, err := collection.Find(ctx, bson.D{}, options.Find().SetLimit(1))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return err
		}
		return errNoDocument
	}
	return cursor.Decode(doc)
}
