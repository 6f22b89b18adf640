package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventgraph/models"
)

// MongoSource reads one collection per entity kind, in natural order.
type MongoSource struct {
	client *mongo.Client
	DB     *mongo.Database
}

func OpenMongo(ctx context.Context, uri, database string) (*MongoSource, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mg, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "mongo.Connect")
	}
	if err := mg.Ping(ctx, nil); err != nil {
		_ = mg.Disconnect(context.Background())
		return nil, errors.Wrap(err, "mongo ping")
	}
	return &MongoSource{client: mg, DB: mg.Database(database)}, nil
}

func (s *MongoSource) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

func (s *MongoSource) Load(ctx context.Context) (models.Dataset, error) {
	var ds models.Dataset
	if err := findAll(ctx, s.DB.Collection("users"), &ds.Users); err != nil {
		return ds, err
	}
	if err := findAll(ctx, s.DB.Collection("locations"), &ds.Locations); err != nil {
		return ds, err
	}
	if err := findAll(ctx, s.DB.Collection("events"), &ds.Events); err != nil {
		return ds, err
	}
	if err := findAll(ctx, s.DB.Collection("participants"), &ds.Participants); err != nil {
		return ds, err
	}
	return ds, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, out *[]T) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cur, err := col.Find(ctx, bson.M{})
	if err != nil {
		return errors.Wrapf(err, "find %s", col.Name())
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return errors.Wrapf(err, "decode %s", col.Name())
		}
		*out = append(*out, v)
	}
	return cur.Err()
}
