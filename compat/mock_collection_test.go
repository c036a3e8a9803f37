package compat

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
)

type MockCollection struct {
	mock.Mock
}

func (m *MockCollection) InsertOne(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document)
	return args.Get(0).(*mongo.InsertOneResult), args.Error(1)
}

func (m *MockCollection) FindOne(ctx context.Context, filter interface{}) *mongo.SingleResult {
	args := m.Called(ctx, filter)
	if newResult, ok := args.Get(0).(func() *mongo.SingleResult); ok {
		return newResult()
	}
	return args.Get(0).(*mongo.SingleResult)
}

func (m *MockCollection) DeleteMany(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(*mongo.DeleteResult), args.Error(1)
}

func (m *MockCollection) Drop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func singleResultOf(doc interface{}) func() *mongo.SingleResult {
	return func() *mongo.SingleResult {
		return mongo.NewSingleResultFromDocument(doc, nil, nil)
	}
}
