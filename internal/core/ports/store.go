package ports

import (
	"context"

	"github.com/taskhub/records-api/internal/core/domain"
)

// ListQuery carries all list parameters after defaulting and clamping by the
// service layer. OwnerID is non-empty when the result must be scoped to one
// principal's records.
type ListQuery struct {
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc"
	Page      int    // 1-based
	Limit     int
	OwnerID   string
}

// Store is the uniform persistence interface over one resource's records,
// implemented by both the in-memory map and the MongoDB collection drivers.
type Store[T domain.Record[T]] interface {
	// Create inserts a new record. It never overwrites an existing id and
	// returns domain.ErrConflict when the record's unique key is already
	// taken (case-insensitively).
	Create(ctx context.Context, rec T) error

	// FindByID returns domain.ErrNotFound when no record has the id.
	FindByID(ctx context.Context, id string) (T, error)

	// FindAll returns one page of matching records plus the total match
	// count before pagination.
	FindAll(ctx context.Context, q ListQuery) ([]T, int64, error)

	// Update replaces the stored record with the same id, failing with
	// domain.ErrNotFound when the id is absent.
	Update(ctx context.Context, rec T) error

	// DeleteByID removes and returns the record, failing with
	// domain.ErrNotFound when the id is absent.
	DeleteByID(ctx context.Context, id string) (T, error)

	// FindByUniqueKey looks a record up by its normalized unique-key value
	// (e.g. lowercased email). domain.ErrNotFound when absent or when the
	// resource declares no unique key.
	FindByUniqueKey(ctx context.Context, key string) (T, error)

	// Count reports the number of stored records.
	Count(ctx context.Context, ownerID string) (int64, error)
}
