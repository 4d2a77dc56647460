package repository

import (
	"context"
	"log"

	"github.com/tieubaoca/docqa-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// QueryLogRepo is the append-only question/answer log. Entries are never
// updated or deleted.
type QueryLogRepo interface {
	AppendQueryLog(ctx context.Context, entry *types.QueryLogEntry) error
	ListQueryLog(ctx context.Context, page, limit int64) ([]*types.QueryLogEntry, error)
}

type queryLogRepo struct {
	collection *mongo.Collection
}

func NewQueryLogRepo(db *mongo.Database) QueryLogRepo {
	collection := db.Collection("query_logs")
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "created_at", Value: -1},
			},
		},
	}
	if _, err := collection.Indexes().CreateMany(context.Background(), indexes); err != nil {
		log.Printf("Error creating query log indexes: %v", err)
	}

	return &queryLogRepo{
		collection: collection,
	}
}

func (r *queryLogRepo) AppendQueryLog(ctx context.Context, entry *types.QueryLogEntry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *queryLogRepo) ListQueryLog(ctx context.Context, page, limit int64) ([]*types.QueryLogEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*types.QueryLogEntry
	for cursor.Next(ctx) {
		var entry types.QueryLogEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}
