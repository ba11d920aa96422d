package sink

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewMongoClient connects and pings a MongoDB deployment.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// MongoSink writes visitor documents to a single collection using
// merge-style upserts.
type MongoSink struct {
	collection *mongo.Collection
}

func NewMongoSink(client *mongo.Client, database, collection string) *MongoSink {
	return &MongoSink{collection: client.Database(database).Collection(collection)}
}

// Write upserts the document keyed by visitor id, setting only the provided
// fields so earlier writes are preserved.
func (s *MongoSink) Write(ctx context.Context, visitorID string, doc Document) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.collection.UpdateOne(
		ctx,
		bson.M{"_id": visitorID},
		bson.M{"$set": bson.M(doc)},
		options.Update().SetUpsert(true),
	)
	return err
}
