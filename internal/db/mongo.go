package db

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/job"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureMongoIndexes creates the jobs collection indexes and a validator
// rejecting documents whose jobType is outside the enum.
func EnsureMongoIndexes(ctx context.Context, mdb *mongo.Database) error {
	validator := bson.M{"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"companyName", "jobPosition", "salary", "jobType", "user"},
		"properties": bson.M{
			"salary":  bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}},
			"jobType": bson.M{"enum": job.JobTypes()},
		},
	}}
	err := mdb.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: job.MongoCollection},
		{Key: "validator", Value: validator},
	}).Err()
	if err != nil {
		// collMod fails on a collection that does not exist yet
		err = mdb.CreateCollection(ctx, job.MongoCollection, options.CreateCollection().SetValidator(validator))
		if err != nil {
			return fmt.Errorf("set job validator: %w", err)
		}
	}

	coll := mdb.Collection(job.MongoCollection)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "salary", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create job indexes: %w", err)
	}

	return nil
}
