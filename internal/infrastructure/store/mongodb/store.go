package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/ports"
	"github.com/taskhub/records-api/internal/core/resource"
)

type Store[T domain.Record[T]] struct {
	col *mongo.Collection
	def resource.Definition[T]
}

func New[T domain.Record[T]](db *mongo.Database, def resource.Definition[T]) *Store[T] {
	return &Store[T]{col: db.Collection(def.Plural), def: def}
}

func (s *Store[T]) Create(ctx context.Context, rec T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.col.InsertOne(ctx, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert %s: %w", s.def.Name, err)
	}
	return nil
}

func (s *Store[T]) FindByID(ctx context.Context, id string) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec := s.def.New()
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(rec)
	if err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("find %s: %w", s.def.Name, err)
	}
	return rec, nil
}

func (s *Store[T]) FindAll(ctx context.Context, q ports.ListQuery) ([]T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if q.OwnerID != "" {
		filter["owner_id"] = q.OwnerID
	}
	if q.Search != "" {
		pattern := regexp.QuoteMeta(q.Search)
		or := make([]bson.M, 0, len(s.def.SearchFields))
		for _, f := range s.def.SearchFields {
			or = append(or, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
		}
		if len(or) > 0 {
			filter["$or"] = or
		}
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", s.def.Plural, err)
	}

	findOpts := options.Find().
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))
	if wire, ok := s.def.SortFieldMap[q.SortBy]; ok {
		dir := 1
		if q.SortOrder == "desc" {
			dir = -1
		}
		findOpts.SetSort(bson.D{{Key: wire, Value: dir}})
	}

	cur, err := s.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.def.Plural, err)
	}
	defer cur.Close(ctx)

	var out []T
	for cur.Next(ctx) {
		rec := s.def.New()
		if err := cur.Decode(rec); err != nil {
			return nil, 0, fmt.Errorf("decode %s: %w", s.def.Name, err)
		}
		out = append(out, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor %s: %w", s.def.Plural, err)
	}
	return out, total, nil
}

func (s *Store[T]) Update(ctx context.Context, rec T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": rec.RecordMeta().ID}, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update %s: %w", s.def.Name, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store[T]) DeleteByID(ctx context.Context, id string) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rec := s.def.New()
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(rec)
	if err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("delete %s: %w", s.def.Name, err)
	}
	return rec, nil
}

func (s *Store[T]) FindByUniqueKey(ctx context.Context, key string) (T, error) {
	var zero T
	if s.def.UniqueField == "" {
		return zero, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := "^" + regexp.QuoteMeta(strings.TrimSpace(key)) + "$"
	rec := s.def.New()
	err := s.col.FindOne(ctx, bson.M{
		s.def.UniqueField: bson.M{"$regex": pattern, "$options": "i"},
	}).Decode(rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, domain.ErrNotFound
		}
		return zero, fmt.Errorf("find %s by %s: %w", s.def.Name, s.def.UniqueField, err)
	}
	return rec, nil
}

func (s *Store[T]) Count(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if ownerID != "" {
		filter["owner_id"] = ownerID
	}
	return s.col.CountDocuments(ctx, filter)
}

// EnsureIndexes creates the collection's indexes: a case-insensitive unique
// index on the unique-key field (closing the check-then-insert race at the
// store), plus owner and recency indexes for scoped lists.
func (s *Store[T]) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if s.def.UniqueField != "" {
		indexes = append(indexes, mongo.IndexModel{
			Keys: bson.D{{Key: s.def.UniqueField, Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetCollation(&options.Collation{Locale: "en", Strength: 2}),
		})
	}

	_, err := s.col.Indexes().CreateMany(ctx, indexes)
	return err
}
