package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/ports"
)

const defaultActivityLimit = 50

// ActivityService persists and serves the mutation audit trail.
type ActivityService struct {
	store ports.ActivityStore
	log   zerolog.Logger
}

func NewActivityService(store ports.ActivityStore, log zerolog.Logger) *ActivityService {
	return &ActivityService{store: store, log: log}
}

// Process persists one dequeued activity entry.
func (s *ActivityService) Process(ctx context.Context, e domain.ActivityEntry) error {
	if err := s.store.Insert(ctx, &e); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}
	s.log.Debug().
		Str("resource", e.Resource).
		Str("record_id", e.RecordID).
		Str("action", e.Action).
		Msg("activity recorded")
	return nil
}

// ListRecent returns up to limit audit entries, newest first.
func (s *ActivityService) ListRecent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultActivityLimit
	}
	return s.store.ListRecent(ctx, limit)
}
