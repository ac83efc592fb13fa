package mongodb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhub/records-api/internal/core/domain"
)

const collectionActivity = "activity"

// ActivityStore persists the mutation audit trail in the activity collection.
type ActivityStore struct {
	col *mongo.Collection
}

func NewActivityStore(db *mongo.Database) *ActivityStore {
	return &ActivityStore{col: db.Collection(collectionActivity)}
}

func (s *ActivityStore) Insert(ctx context.Context, e *domain.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := *e
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (s *ActivityStore) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.ActivityEntry
	for cur.Next(ctx) {
		var e domain.ActivityEntry
		if err := cur.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		out = append(out, &e)
	}
	return out, cur.Err()
}
