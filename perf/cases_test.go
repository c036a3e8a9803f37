package perf

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

func smallConfig(out *bytes.Buffer) bench.TestingConfig {
	return bench.TestingConfig{Scale: 0.001, Trials: 1, Out: out}
}

func TestInsertString(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, bson.D{}).Return(&mongo.DeleteResult{}, nil)

	var out bytes.Buffer
	results, err := insertString(context.Background(), mockCollection, smallConfig(&out))
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "InsertOne", 20)
	mockCollection.AssertNumberOfCalls(t, "DeleteMany", 1)
	mockCollection.AssertCalled(t, "InsertOne", mock.Anything, bson.D{{Key: "name", Value: "String value"}})
	require.Len(t, results, 1)
	assert.Equal(t, "Insert String", results[0].Name)
	assert.Equal(t, 10, results[0].Operations)
	assert.Contains(t, out.String(), "Test,Ops per Second,Time Taken Millis, \nInsert String,")
	assert.True(t, results[0].GroupRate)
}

func TestInsertInt(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, bson.D{{Key: "name", Value: 1}}).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)

	results, err := insertInt(context.Background(), mockCollection, smallConfig(new(bytes.Buffer)))
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "InsertOne", 20)
	assert.Equal(t, "Insert Int", results[0].Name)
}

func TestInsertStopsOnError(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return((*mongo.InsertOneResult)(nil), errors.New("not primary"))

	_, err := insertString(context.Background(), mockCollection, smallConfig(new(bytes.Buffer)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not primary")
	mockCollection.AssertNumberOfCalls(t, "InsertOne", 1)
	mockCollection.AssertNotCalled(t, "DeleteMany", mock.Anything, mock.Anything)
}

func TestInsertTimeBudget(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)

	var out bytes.Buffer
	results, err := insertTimeBudget(context.Background(), mockCollection, smallConfig(&out))
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "InsertOne", 1)
	mockCollection.AssertNumberOfCalls(t, "DeleteMany", 1)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Operations)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Starting Benchmark", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], ", start time"))
	assert.True(t, strings.HasSuffix(lines[2], ", end time"))
	assert.Regexp(t, `^Time taken: \d+ nanos$`, lines[3])
}

func TestQuerySingleDocument(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)
	mockCollection.On("FindOne", mock.Anything, mock.Anything).Return(singleResultOf(bson.D{{Key: "test", Value: "Document"}}))
	mockCollection.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorOf(stored), nil)

	var out bytes.Buffer
	results, err := querySingleDocumentWithSingleStringField(context.Background(), mockCollection, smallConfig(&out))
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "InsertOne", 11)
	mockCollection.AssertNumberOfCalls(t, "FindOne", 10)
	mockCollection.AssertNumberOfCalls(t, "Find", 200)
	mockCollection.AssertNumberOfCalls(t, "DeleteMany", 1)
	assert.Equal(t, "Query Single Document", results[0].Name)
	assert.Contains(t, out.String(), `"test": "Document"`)
}

func TestQuerySingleDocumentWith100Fields(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)
	mockCollection.On("FindOne", mock.Anything, mock.Anything).Return(singleResultOf(stored))
	mockCollection.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorOf(stored), nil)

	results, err := querySingleDocumentWith100Fields(context.Background(), mockCollection, smallConfig(new(bytes.Buffer)))
	require.NoError(t, err)

	assert.Equal(t, "Query Single Document 100 fields", results[0].Name)
	populated := mockCollection.Calls[len(mockCollection.Calls)-201].Arguments.Get(1).(bson.D)
	assert.Len(t, populated, 100)
}

func TestQuerySingleDocumentFailsOnEmptyCollection(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)
	mockCollection.On("FindOne", mock.Anything, mock.Anything).Return(singleResultOf(stored))
	mockCollection.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorOf(), nil)

	_, err := querySingleDocumentWithSingleStringField(context.Background(), mockCollection, smallConfig(new(bytes.Buffer)))
	require.ErrorIs(t, err, errNoDocument)
	mockCollection.AssertNumberOfCalls(t, "Find", 1)
}

func TestQueryAllDocuments(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)
	mockCollection.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorOf(stored), nil)

	var out bytes.Buffer
	results, err := queryAllDocumentsWithSingleStringField(context.Background(), mockCollection, smallConfig(&out))
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "InsertOne", 11)
	mockCollection.AssertNumberOfCalls(t, "Find", 30)
	assert.Equal(t, "Query 1 Documents", results[0].Name)
	assert.Equal(t, 20, results[0].Operations)
}

func TestQueryAllDocumentsWith100Fields(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)
	mockCollection.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorOf(stored), nil)

	results, err := queryAllDocumentsWith100Fields(context.Background(), mockCollection, smallConfig(new(bytes.Buffer)))
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "Find", 12)
	assert.Equal(t, "Query 1 Documents 100 fields", results[0].Name)
}

func TestQueryAllDocumentsFailsOnShortRead(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)
	mockCollection.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorOf(), nil)

	_, err := queryAllDocumentsWithSingleStringField(context.Background(), mockCollection, smallConfig(new(bytes.Buffer)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cursor exhausted after 0 of 1 documents")
}

func TestUpdateSingleDocument(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)
	mockCollection.On("UpdateOne", mock.Anything, mock.Anything, newField).Return(&mongo.UpdateResult{ModifiedCount: 1}, nil)

	results, err := updateSingleDocumentWithSingleStringField(context.Background(), mockCollection, smallConfig(new(bytes.Buffer)))
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "InsertOne", 30)
	mockCollection.AssertNumberOfCalls(t, "UpdateOne", 30)
	warmup := bson.D{{Key: "test", Value: "Document"}}
	mockCollection.AssertCalled(t, "InsertOne", mock.Anything, warmup)
	mockCollection.AssertCalled(t, "UpdateOne", mock.Anything, warmup, newField)
	mockCollection.AssertNotCalled(t, "InsertOne", mock.Anything, bson.D{{Key: "name", Value: "String value"}})
	mockCollection.AssertCalled(t, "InsertOne", mock.Anything, bson.D{{Key: "_id", Value: 19}, {Key: "name", Value: "String value"}})
	mockCollection.AssertCalled(t, "UpdateOne", mock.Anything, bson.D{{Key: "_id", Value: 19}}, newField)
	assert.Equal(t, "Update Single Document", results[0].Name)
	assert.Equal(t, 20, results[0].Operations)
}

func TestReadDocuments(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("DeleteMany", mock.Anything, mock.Anything).Return(&mongo.DeleteResult{}, nil)
	mockCollection.On("Drop", mock.Anything).Return(nil)
	mockCollection.On("FindOne", mock.Anything, mock.Anything).Return(singleResultOf(bson.D{{Key: "_id", Value: 0}, {Key: "filler", Value: "x"}}))

	var out bytes.Buffer
	results, err := readDocuments(context.Background(), mockCollection, smallConfig(&out))
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "FindOne", 3344)
	mockCollection.AssertNumberOfCalls(t, "InsertOne", 3344)
	mockCollection.AssertNumberOfCalls(t, "Drop", 13)
	mockCollection.AssertNumberOfCalls(t, "DeleteMany", 1)

	require.Len(t, results, 12)
	assert.Equal(t, "Read 1 documents of size 1", results[0].Name)
	assert.Equal(t, "Read 1000 documents of size 1000", results[11].Name)
	assert.Equal(t, 1000, results[11].Operations)
	assert.Equal(t, 3, strings.Count(out.String(), "Benchmarking documents of size: "))
	assert.Contains(t, out.String(), "\nBenchmarking documents of size: 100\n")
	assert.Regexp(t, `Read 10 documents in \d+ millis, [\d.]+ documents/second`, out.String())
	for _, call := range mockCollection.Calls {
		if call.Method == "FindOne" {
			assert.Equal(t, bson.D{}, call.Arguments.Get(1))
		}
	}
}

func TestReadRunPrintsLastDocumentAfterTimedLoop(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("Drop", mock.Anything).Return(nil)
	mockCollection.On("InsertOne", mock.Anything, mock.Anything).Return(&mongo.InsertOneResult{}, nil)
	mockCollection.On("FindOne", mock.Anything, bson.D{}).Return(singleResultOf(bson.D{{Key: "_id", Value: 0}, {Key: "filler", Value: "xx"}}))

	var out bytes.Buffer
	res, err := readRun(context.Background(), mockCollection, smallConfig(&out), 2, 3, 4)
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "InsertOne", 3)
	mockCollection.AssertNumberOfCalls(t, "FindOne", 12)
	assert.Equal(t, 12, res.Operations)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"_id": {"$numberInt":"0"},"filler": "xx"}`, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Read 12 documents in "), lines[1])
}

func TestInsertBatch(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("Drop", mock.Anything).Return(nil)
	mockCollection.On("InsertMany", mock.Anything, mock.Anything).Return(&mongo.InsertManyResult{}, nil)
	mockCollection.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(200), nil)

	var out bytes.Buffer
	results, err := insertBatch(context.Background(), mockCollection, smallConfig(&out))
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "InsertMany", 224)
	mockCollection.AssertNumberOfCalls(t, "Drop", 6)
	mockCollection.AssertNumberOfCalls(t, "CountDocuments", 6)

	require.Len(t, results, 4)
	assert.Equal(t, "Insert Batch documentSize=400 batchSize=10000", results[3].Name)
	assert.Equal(t, 200, results[0].Operations)

	output := out.String()
	assert.True(t, strings.HasPrefix(output, "Warming up\n\n\n"))
	assert.Contains(t, output, "Benchmarking documentSize=400 batchSize=1000\n")
	assert.Contains(t, output, "Starting benchmark\nBenchmarking documentSize=400 batchSize=1\n")
	assert.NotContains(t, output, "documentSize=1 ")
	assert.Contains(t, output, "Count: 200\n")
	assert.Regexp(t, `Duration = \d+ Speed=[\d,]+\.\d{2}/second`, output)
}

func TestInsertBatchRepeatsProcessWarmup(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("Drop", mock.Anything).Return(nil)
	mockCollection.On("InsertMany", mock.Anything, mock.Anything).Return(&mongo.InsertManyResult{}, nil)
	mockCollection.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1000), nil)

	var out bytes.Buffer
	config := bench.TestingConfig{Scale: 0.02, Out: &out}
	_, err := insertBatch(context.Background(), mockCollection, config)
	require.NoError(t, err)

	// server warmup, two single-batch process warmups, four timed runs
	mockCollection.AssertNumberOfCalls(t, "Drop", 7)
	mockCollection.AssertNumberOfCalls(t, "CountDocuments", 7)
	mockCollection.AssertNumberOfCalls(t, "InsertMany", 4+2+4000+400+4+1)
	assert.Equal(t, 2, strings.Count(out.String(), "Benchmarking documentSize=5 batchSize=1000\n"))
}

func TestInsertBatchSendsFullBatches(t *testing.T) {
	mockCollection := new(MockCollection)
	mockCollection.On("Drop", mock.Anything).Return(nil)
	mockCollection.On("InsertMany", mock.Anything, mock.Anything).Return(&mongo.InsertManyResult{}, nil)
	mockCollection.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(10), nil)

	res, err := runBatch(context.Background(), mockCollection, smallConfig(new(bytes.Buffer)), 5, 10, 3)
	require.NoError(t, err)

	mockCollection.AssertNumberOfCalls(t, "InsertMany", 3)
	batch := mockCollection.Calls[1].Arguments.Get(1).([]interface{})
	require.Len(t, batch, 10)
	assert.Equal(t, bson.D{{Key: "filler", Value: "xxxxx"}}, batch[0])
	assert.Equal(t, 10, res.Operations)
}

func TestBatchCount(t *testing.T) {
	assert.Equal(t, 200000, batchCount(200000, 1))
	assert.Equal(t, 20, batchCount(200000, 10000))
	assert.Equal(t, 1, batchCount(200, 1000))
}
