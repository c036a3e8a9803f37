// Package perf benchmarks the current generation of the MongoDB Go driver API.
//
// Every case follows the same shape: warm up, clear the collection, optionally populate it, then
// time a loop of one operation kind and print the throughput.
package perf

import (
	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

// Benchmark is a named case. Cases of the same Group share a collection named after the group.
type Benchmark = bench.Case[CollectionAPI]

// Benchmarks returns all cases in the order they run.
func Benchmarks() []Benchmark {
	return []Benchmark{
		{Name: "InsertString", Group: "perf.InsertPerformanceTest", Run: insertString},
		{Name: "InsertInt", Group: "perf.InsertPerformanceTest", Run: insertInt},
		{Name: "InsertTimeBudget", Group: "perf.InsertPerformanceTest", Run: insertTimeBudget},
		{Name: "QuerySingleDocumentWithSingleStringField", Group: "perf.QueryPerformanceTest", Run: querySingleDocumentWithSingleStringField},
		{Name: "QuerySingleDocumentWith100Fields", Group: "perf.QueryPerformanceTest", Run: querySingleDocumentWith100Fields},
		{Name: "QueryAllDocumentsWithSingleStringField", Group: "perf.QueryAllPerformanceTest", Run: queryAllDocumentsWithSingleStringField},
		{Name: "QueryAllDocumentsWith100Fields", Group: "perf.QueryAllPerformanceTest", Run: queryAllDocumentsWith100Fields},
		{Name: "UpdateSingleDocumentWithSingleStringField", Group: "perf.UpdatePerformanceTest", Run: updateSingleDocumentWithSingleStringField},
		{Name: "ReadDocuments", Group: "perf.ReadDocumentsPerformanceTest", Run: readDocuments},
		{Name: "InsertBatch", Group: "perf.InsertBatchPerformanceTest", Run: insertBatch},
	}
}

// Select returns the cases with the given names, matched case-insensitively, in the order
// Benchmarks lists them. No names selects every case.
func Select(names []string) ([]Benchmark, error) {
	return bench.Select(Benchmarks(), names)
}
