package perf

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

const readIterations = 1000

var (
	readDocumentSizes  = []int{1, 100, 1000}
	readDocumentCounts = []int{1, 10, 100, 1000}
)

// readDocuments sweeps FindOne throughput over collections of different sizes and document widths.
func readDocuments(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	doc := document(bench.StringDocument())
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
		return nil, err
	}
	out := config.Output()
	fmt.Fprintln(out, found)
	if err := deleteAll(ctx, collection); err != nil {
		return nil, errors.Wrap(err, "failed to clear collection")
	}

	// primer run so the first measured configuration does not pay for connection setup
	if _, err := readRun(ctx, collection, config, 1, 1, 1); err != nil {
		return nil, err
	}

	var results []bench.Result
	iterations := config.Scaled(readIterations)
	for _, size := range readDocumentSizes {
		fmt.Fprintf(out, "\nBenchmarking documents of size: %d\n", size)
		for _, count := range readDocumentCounts {
			res, err := readRun(ctx, collection, config, size, count, iterations)
			if err != nil {
				return results, err
			}
			results = append(results, res)
		}
	}
	return results, nil
}

// readRun recreates the collection with count filler documents and reads the first document
// iterations*count times, printing the last one read.
func readRun(ctx context.Context, collection CollectionAPI, config bench.TestingConfig, size, count, iterations int) (bench.Result, error) {
	if err := collection.Drop(ctx); err != nil {
		return bench.Result{}, errors.Wrap(err, "failed to drop collection")
	}
	filler := bench.Filler(size)
	for j := 0; j < count; j++ {
		if _, err := collection.InsertOne(ctx, bson.D{{Key: "_id", Value: j}, {Key: "filler", Value: filler}}); err != nil {
			return bench.Result{}, errors.Wrap(err, "failed to create documents")
		}
	}

	name := fmt.Sprintf("Read %d documents of size %d", count, size)
	var last bson.Raw
	res, err := bench.Measure(ctx, name, iterations*count, func(int) error {
		var err error
		last, err = collection.FindOne(ctx, bson.D{}).Raw()
		return err
	})
	if err != nil {
		return bench.Result{}, err
	}
	out := config.Output()
	fmt.Fprintln(out, last)
	fmt.Fprintf(out, "Read %d documents in %d millis, %.1f documents/second\n",
		res.Operations, res.Millis(), res.OpsPerSecond())
	return res, nil
}
