package perf

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/idealo/mongodb-driver-perf/internal/bench"
)

// CollectionAPI defines the collection operations the benchmarks time, allowing for testing
type CollectionAPI interface {
	InsertOne(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	InsertMany(ctx context.Context, documents []interface{}) (*mongo.InsertManyResult, error)
	Find(ctx context.Context, filter interface{}, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	DeleteMany(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Drop(ctx context.Context) error
}

// MongoDBCollection is a wrapper around mongo.Collection to implement CollectionAPI
type MongoDBCollection struct {
	*mongo.Collection
}

func (c *MongoDBCollection) InsertOne(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	return c.Collection.InsertOne(ctx, document)
}

func (c *MongoDBCollection) InsertMany(ctx context.Context, documents []interface{}) (*mongo.InsertManyResult, error) {
	return c.Collection.InsertMany(ctx, documents)
}

func (c *MongoDBCollection) Find(ctx context.Context, filter interface{}, opts ...options.Lister[options.FindOptions]) (*mongo.Cursor, error) {
	return c.Collection.Find(ctx, filter, opts...)
}

func (c *MongoDBCollection) FindOne(ctx context.Context, filter interface{}) *mongo.SingleResult {
	return c.Collection.FindOne(ctx, filter)
}

func (c *MongoDBCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error) {
	return c.Collection.UpdateOne(ctx, filter, update)
}

func (c *MongoDBCollection) DeleteMany(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	return c.Collection.DeleteMany(ctx, filter)
}

func (c *MongoDBCollection) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return c.Collection.CountDocuments(ctx, filter)
}

func (c *MongoDBCollection) Drop(ctx context.Context) error {
	return c.Collection.Drop(ctx)
}

// document converts benchmark fields into an ordered BSON document.
func document(fields []bench.Field) bson.D {
	doc := make(bson.D, 0, len(fields))
	for _, f := range fields {
		doc = append(doc, bson.E{Key: f.Key, Value: f.Value})
	}
	return doc
}

func deleteAll(ctx context.Context, collection CollectionAPI) error {
	_, err := collection.DeleteMany(ctx, bson.D{})
	return err
}

func populate(ctx context.Context, collection CollectionAPI, numberOfDocuments int, doc bson.D) error {
	for i := 0; i < numberOfDocuments; i++ {
		if _, err := collection.InsertOne(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
