package compat

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

// CollectionAPI defines the legacy collection operations the benchmarks time, allowing for testing
type CollectionAPI interface {
	InsertOne(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}) *mongo.SingleResult
	DeleteMany(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error)
	Drop(ctx context.Context) error
}

// MongoDBCollection is a wrapper around mongo.Collection to implement CollectionAPI
type MongoDBCollection struct {
	*mongo.Collection
}

func (c *MongoDBCollection) InsertOne(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	return c.Collection.InsertOne(ctx, document)
}

func (c *MongoDBCollection) FindOne(ctx context.Context, filter interface{}) *mongo.SingleResult {
	return c.Collection.FindOne(ctx, filter)
}

func (c *MongoDBCollection) DeleteMany(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	return c.Collection.DeleteMany(ctx, filter)
}

func (c *MongoDBCollection) Drop(ctx context.Context) error {
	return c.Collection.Drop(ctx)
}

// document converts benchmark fields into an ordered BSON document. The driver adds a generated _id
// to the encoded copy only, so the same document can be inserted repeatedly.
func document(fields []bench.Field) bson.D {
	doc := make(bson.D, 0, len(fields))
	for _, f := range fields {
		doc = append(doc, bson.E{Key: f.Key, Value: f.Value})
	}
	return doc
}

func insertOne(ctx context.Context, collection CollectionAPI, doc bson.D) error {
	_, err := collection.InsertOne(ctx, doc)
	return err
}

func deleteAll(ctx context.Context, collection CollectionAPI) error {
	_, err := collection.DeleteMany(ctx, bson.D{})
	return err
}
