package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type snapshotDocument struct {
	Collection string    `bson:"_id"`
	Payload    []byte    `bson:"payload"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per collection in the snapshots collection
type MongoStore struct {
	collection *mongo.Collection
}

var _ SnapshotStore = (*MongoStore)(nil)

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{collection: db.Collection("snapshots")}
}

func (s *MongoStore) Load(ctx context.Context, name string) ([]byte, error) {
	var doc snapshotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s snapshot: %w", name, err)
	}
	return doc.Payload, nil
}

// Save replaces the whole document; single-document writes are atomic in MongoDB
func (s *MongoStore) Save(ctx context.Context, name string, data []byte) error {
	doc := snapshotDocument{Collection: name, Payload: data, UpdatedAt: time.Now()}
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save %s snapshot: %w", name, err)
	}
	return nil
}
