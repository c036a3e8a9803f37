package perf

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

const (
	numberOfInsertOperations = 10000
	insertWarmupRuns         = 10000
)

func insertString(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return insertDocuments(ctx, collection, config, "Insert String", bench.StringDocument)
}

func insertInt(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	return insertDocuments(ctx, collection, config, "Insert Int", bench.IntDocument)
}

// insertDocuments times inserts of a freshly built document per operation.
func insertDocuments(ctx context.Context, collection CollectionAPI, config bench.TestingConfig, name string, fields func() []bench.Field) ([]bench.Result, error) {
	err := bench.Warmup(ctx, config.Scaled(insertWarmupRuns), func(int) error {
		_, err := collection.InsertOne(ctx, document(fields()))
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := deleteAll(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to clear collection")
	}

	res, err := bench.Measure(ctx, name, config.Scaled(numberOfInsertOperations), func(int) error {
		_, err := collection.InsertOne(ctx, document(fields()))
		return err
	})
	if err != nil {
		return nil, err
	}
	res.GroupRate = true
	res.Print(config.Output())
	return []bench.Result{res}, nil
}

// insertTimeBudget reports the latency of a single insert on a cold collection, in nanoseconds.
func insertTimeBudget(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	if err := deleteAll(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to clear collection")
	}

	out := config.Output()
	fmt.Fprintln(out, "Starting Benchmark")
	startTime := time.Now()
	fmt.Fprintf(out, "%d, start time\n", startTime.UnixNano())
	if _, err := collection.InsertOne(ctx, bson.D{{Key: "name", Value: "String value"}}); err != nil {
		return nil, errors.Wrap(err, "insert failed")
	}
	timeTaken := time.Since(startTime)

	fmt.Fprintf(out, "%d, end time\n", startTime.Add(timeTaken).UnixNano())
	fmt.Fprintf(out, "Time taken: %d nanos\n", timeTaken.Nanoseconds())
	return []bench.Result{{Name: "Insert Time Budget", Operations: 1, Elapsed: timeTaken}}, nil
}
