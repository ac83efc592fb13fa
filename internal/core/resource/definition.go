package resource

import (
	"context"

	"github.com/taskhub/records-api/internal/core/domain"
)

// Definition declares everything resource-specific the pipeline needs: field
// access for search and sort, the uniqueness constraint, and the access
// rules. One Definition instantiates one Service, one Store, and one route
// group, replacing a hand-copied controller per resource.
type Definition[T domain.Record[T]] struct {
	// Name is the singular resource name ("contact"); Plural names the
	// route segment and the MongoDB collection ("contacts").
	Name   string
	Plural string

	// New allocates an empty record, used when decoding from the cache.
	New func() T

	// Owned enforces ownership scoping: only the creating principal (or an
	// admin) may read, mutate, or delete the record.
	Owned bool

	// AdminDelete additionally restricts deletion to the admin role.
	AdminDelete bool

	// UniqueKey extracts the value under the resource's uniqueness
	// constraint (compared case-insensitively), or "" when none applies.
	// UniqueField is the wire (bson) name of that field.
	UniqueKey   func(T) string
	UniqueField string

	// SearchFields are the wire names searched by the MongoDB driver;
	// SearchText returns the corresponding values for the memory driver.
	SearchFields []string
	SearchText   func(T) []string

	// SortValue returns the record's value for a sort key as a string for
	// lexicographic comparison, or "" when the key is unknown.
	// SortFieldMap translates sort keys to wire names for MongoDB.
	SortValue        func(T, string) string
	SortFieldMap     map[string]string
	DefaultSortBy    string
	DefaultSortOrder string // "asc" when empty

	// BeforeCreate runs after validation and before the uniqueness check,
	// e.g. to verify that a referenced record exists.
	BeforeCreate func(context.Context, T) error

	// OnRead mutates the record on every successful single-record read
	// (e.g. a view counter) and is persisted without refreshing UpdatedAt.
	OnRead func(T)
}

func (d Definition[T]) uniqueKeyOf(rec T) string {
	if d.UniqueKey == nil {
		return ""
	}
	return normalizeKey(d.UniqueKey(rec))
}
