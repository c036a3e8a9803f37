package perf

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) InsertOne(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document)
	return args.Get(0).(*mongo.InsertOneResult), args.Error(1)
}

func (m *MockCollection) InsertMany(ctx context.Context, documents []interface{}) (*mongo.InsertManyResult, error) {
	args := m.Called(ctx, documents)
	return args.Get(0).(*mongo.InsertManyResult), args.Error(1)
}

// Find accepts either a cursor or a func returning a fresh one, since a cursor can only be read once.
func (m *MockCollection) Find(ctx context.Context, filter interface{}, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error) {
	args := m.Called(ctx, filter, opts)
	if newCursor, ok := args.Get(0).(func() *mongo.Cursor); ok {
		return newCursor(), args.Error(1)
	}
	return args.Get(0).(*mongo.Cursor), args.Error(1)
}

func (m *MockCollection) FindOne(ctx context.Context, filter interface{}) *mongo.SingleResult {
	args := m.Called(ctx, filter)
	if newResult, ok := args.Get(0).(func() *mongo.SingleResult); ok {
		return newResult()
	}
	return args.Get(0).(*mongo.SingleResult)
}

func (m *MockCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	args := m.Called(ctx, filter, update)
	return args.Get(0).(*mongo.UpdateResult), args.Error(1)
}

func (m *MockCollection) DeleteMany(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(*mongo.DeleteResult), args.Error(1)
}

func (m *MockCollection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCollection) Drop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func cursorOf(docs ...interface{}) func() *mongo.Cursor {
	return func() *mongo.Cursor {
		cursor, err := mongo.NewCursorFromDocuments(docs, nil, nil)
		if err != nil {
			panic(err)
		}
		return cursor
	}
}

func singleResultOf(doc interface{}) func() *mongo.SingleResult {
	return func() *mongo.SingleResult {
		return mongo.NewSingleResultFromDocument(doc, nil, nil)
	}
}

var stored = bson.D{{Key: "_id", Value: 0}, {Key: "name", Value: "String value"}}
