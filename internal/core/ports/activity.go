package ports

import (
	"context"

	"github.com/taskhub/records-api/internal/core/domain"
)

// ActivityStore persists the mutation audit trail.
type ActivityStore interface {
	Insert(ctx context.Context, e *domain.ActivityEntry) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
}

// ActivityRecorder accepts activity entries for asynchronous processing.
// Record must not block the request path beyond queue capacity.
type ActivityRecorder interface {
	Record(e domain.ActivityEntry)
}
