// Package memory implements ports.Store over a mutex-guarded map. It is the
// default driver for development and the fixture driver for tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/ports"
	"github.com/taskhub/records-api/internal/core/resource"
)

type Store[T domain.Record[T]] struct {
	def resource.Definition[T]

	mu      sync.RWMutex
	records map[string]T
}

func New[T domain.Record[T]](def resource.Definition[T]) *Store[T] {
	return &Store[T]{
		def:     def,
		records: make(map[string]T),
	}
}

// Create inserts a clone of rec. The uniqueness check and the insert happen
// under one lock, so check-then-insert is atomic in-process.
func (s *Store[T]) Create(_ context.Context, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.RecordMeta().ID
	if _, exists := s.records[id]; exists {
		return fmt.Errorf("id %q already in use", id)
	}
	if key := s.uniqueKeyOf(rec); key != "" {
		for _, existing := range s.records {
			if s.uniqueKeyOf(existing) == key {
				return domain.ErrConflict
			}
		}
	}

	s.records[id] = rec.Clone()
	return nil
}

func (s *Store[T]) FindByID(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *Store[T]) FindAll(_ context.Context, q ports.ListQuery) ([]T, int64, error) {
	s.mu.RLock()
	matched := make([]T, 0, len(s.records))
	for _, rec := range s.records {
		if q.OwnerID != "" && rec.RecordMeta().OwnerID != q.OwnerID {
			continue
		}
		if q.Search != "" && !s.matches(rec, q.Search) {
			continue
		}
		matched = append(matched, rec.Clone())
	}
	s.mu.RUnlock()

	s.sortRecords(matched, q.SortBy, q.SortOrder)
	page, info := resource.Paginate(matched, q.Page, q.Limit)
	return page, info.TotalItems, nil
}

func (s *Store[T]) Update(_ context.Context, rec T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := rec.RecordMeta().ID
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	s.records[id] = rec.Clone()
	return nil
}

func (s *Store[T]) DeleteByID(_ context.Context, id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		var zero T
		return zero, domain.ErrNotFound
	}
	delete(s.records, id)
	return rec, nil
}

func (s *Store[T]) FindByUniqueKey(_ context.Context, key string) (T, error) {
	var zero T
	if s.def.UniqueKey == nil {
		return zero, domain.ErrNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	key = strings.ToLower(strings.TrimSpace(key))
	for _, rec := range s.records {
		if s.uniqueKeyOf(rec) == key {
			return rec.Clone(), nil
		}
	}
	return zero, domain.ErrNotFound
}

func (s *Store[T]) Count(_ context.Context, ownerID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ownerID == "" {
		return int64(len(s.records)), nil
	}
	var n int64
	for _, rec := range s.records {
		if rec.RecordMeta().OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

// matches reports whether any searchable field contains term, case-insensitively.
func (s *Store[T]) matches(rec T, term string) bool {
	if s.def.SearchText == nil {
		return false
	}
	term = strings.ToLower(term)
	for _, v := range s.def.SearchText(rec) {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func (s *Store[T]) sortRecords(recs []T, sortBy, sortOrder string) {
	if s.def.SortValue == nil || sortBy == "" {
		return
	}
	desc := sortOrder == "desc"
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := s.def.SortValue(recs[i], sortBy), s.def.SortValue(recs[j], sortBy)
		if desc {
			return a > b
		}
		return a < b
	})
}

func (s *Store[T]) uniqueKeyOf(rec T) string {
	if s.def.UniqueKey == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s.def.UniqueKey(rec)))
}
