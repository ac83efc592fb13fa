package ports

import "context"

// RecordCache is a read-through cache for single-record lookups, keyed by
// resource name and record id. Implementations must treat a miss as
// (false, nil), never as an error.
type RecordCache interface {
	Get(ctx context.Context, resource, id string, dst any) (bool, error)
	Set(ctx context.Context, resource, id string, rec any) error
	Invalidate(ctx context.Context, resource, id string) error
}
