package perf

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

const (
	totalBatchDocuments  = 200000
	warmupBatchSize      = 1000
	serverWarmupDocSize  = 400
	processWarmupDocSize = 5
	processWarmupRuns    = 100
	batchDocumentSize    = 400
)

var batchSizes = []int{1, 10, 1000, 10000}

func insertBatch(ctx context.Context, collection CollectionAPI, config bench.TestingConfig) ([]bench.Result, error) {
	out := config.Output()
	fmt.Fprintln(out, "Warming up")
	fmt.Fprintln(out)
	fmt.Fprintln(out)

	total := config.Scaled(totalBatchDocuments)
	if _, err := runBatch(ctx, collection, config, serverWarmupDocSize, warmupBatchSize, batchCount(total, warmupBatchSize)); err != nil {
		return nil, errors.Wrap(err, "server warmup")
	}
	for i := 0; i < config.Scaled(processWarmupRuns); i++ {
		if _, err := runBatch(ctx, collection, config, processWarmupDocSize, warmupBatchSize, 1); err != nil {
			return nil, errors.Wrap(err, "process warmup")
		}
	}
	bench.CollectGarbage()

	fmt.Fprintln(out, "Starting benchmark")
	results := make([]bench.Result, 0, len(batchSizes))
	for _, batchSize := range batchSizes {
		res, err := runBatch(ctx, collection, config, batchDocumentSize, batchSize, batchCount(total, batchSize))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func batchCount(total, batchSize int) int {
	return max(1, total/batchSize)
}

// runBatch drops the collection and inserts batches batches of batchSize filler documents. The
// result counts documents, not batches.
func runBatch(ctx context.Context, collection CollectionAPI, config bench.TestingConfig, documentSize, batchSize, batches int) (bench.Result, error) {
	out := config.Output()
	fmt.Fprintf(out, "Benchmarking documentSize=%d batchSize=%d\n", documentSize, batchSize)
	if err := collection.Drop(ctx); err != nil {
		return bench.Result{}, errors.Wrap(err, "failed to drop collection")
	}

	filler := bench.Filler(documentSize)
	batch := make([]interface{}, batchSize)
	for i := range batch {
		batch[i] = bson.D{{Key: "filler", Value: filler}}
	}

	name := fmt.Sprintf("Insert Batch documentSize=%d batchSize=%d", documentSize, batchSize)
	res, err := bench.Measure(ctx, name, batches, func(int) error {
		_, err := collection.InsertMany(ctx, batch)
		return err
	})
	if err != nil {
		return bench.Result{}, err
	}

	count, err := collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return bench.Result{}, errors.Wrap(err, "failed to count documents")
	}
	fmt.Fprintf(out, "Count: %d\n", count)
	res.Operations = int(count)
	fmt.Fprintf(out, "Duration = %d Speed=%s/second\n", res.Millis(), bench.Grouped(res.OpsPerSecond(), 2))
	return res, nil
}
