package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/taskhub/records-api/internal/core/domain"
)

// maxActivityEntries bounds the in-memory audit trail; the oldest entries
// are discarded once the bound is reached.
const maxActivityEntries = 1000

// ActivityStore keeps the mutation audit trail in memory, newest last.
type ActivityStore struct {
	mu      sync.Mutex
	entries []*domain.ActivityEntry
}

func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

func (s *ActivityStore) Insert(_ context.Context, e *domain.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *e
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	s.entries = append(s.entries, &clone)
	if len(s.entries) > maxActivityEntries {
		s.entries = s.entries[len(s.entries)-maxActivityEntries:]
	}
	return nil
}

func (s *ActivityStore) ListRecent(_ context.Context, limit int) ([]*domain.ActivityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}
	out := make([]*domain.ActivityEntry, 0, limit)
	for i := len(s.entries) - 1; i >= len(s.entries)-limit; i-- {
		clone := *s.entries[i]
		out = append(out, &clone)
	}
	return out, nil
}
