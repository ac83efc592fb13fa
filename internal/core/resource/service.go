package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/ports"
)

const (
	DefaultLimit = 10
	maxLimit     = 100
)

// Service is the generic resource controller: every operation runs the same
// validate → authorize → uniqueness-check → store → respond sequence, and
// every failure branch short-circuits before any mutation is applied.
type Service[T domain.Record[T]] struct {
	def      Definition[T]
	store    ports.Store[T]
	cache    ports.RecordCache
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

func NewService[T domain.Record[T]](def Definition[T], store ports.Store[T], log zerolog.Logger) *Service[T] {
	return &Service[T]{def: def, store: store, log: log}
}

// WithCache enables the read-through record cache on single-record reads.
func (s *Service[T]) WithCache(c ports.RecordCache) *Service[T] {
	s.cache = c
	return s
}

// WithActivity enables audit-trail recording for every mutation.
func (s *Service[T]) WithActivity(a ports.ActivityRecorder) *Service[T] {
	s.activity = a
	return s
}

// Name returns the singular resource name.
func (s *Service[T]) Name() string { return s.def.Name }

// Plural returns the plural resource name used in routes and messages.
func (s *Service[T]) Plural() string { return s.def.Plural }

// Store exposes the underlying store, e.g. for record counts in health checks.
func (s *Service[T]) Store() ports.Store[T] { return s.store }

// Create assigns identity and timestamps to a validated record and persists
// it. A taken unique key yields domain.ErrConflict before any insert.
func (s *Service[T]) Create(ctx context.Context, rec T, p domain.Principal) (T, error) {
	var zero T

	if s.def.BeforeCreate != nil {
		if err := s.def.BeforeCreate(ctx, rec); err != nil {
			return zero, err
		}
	}

	if key := s.def.uniqueKeyOf(rec); key != "" {
		if _, err := s.store.FindByUniqueKey(ctx, key); err == nil {
			return zero, s.conflictErr()
		} else if !errors.Is(err, domain.ErrNotFound) {
			return zero, err
		}
	}

	now := time.Now().UTC()
	m := rec.RecordMeta()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	if s.def.Owned {
		m.OwnerID = p.UserID
	}

	if err := s.store.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the check-then-insert race; same outcome as the
			// up-front check.
			return zero, s.conflictErr()
		}
		s.log.Error().Err(err).Str("resource", s.def.Name).Msg("create failed")
		return zero, err
	}

	s.recordActivity(domain.ActionCreated, m.ID, p)
	s.log.Info().Str("resource", s.def.Name).Str("id", m.ID).Msg("record created")
	return rec, nil
}

// Get returns one record by id, enforcing ownership scoping.
func (s *Service[T]) Get(ctx context.Context, id string, p domain.Principal) (T, error) {
	var zero T

	if s.cache != nil && s.def.OnRead == nil {
		cached := s.def.New()
		if ok, err := s.cache.Get(ctx, s.def.Name, id, cached); err != nil {
			s.log.Warn().Err(err).Str("resource", s.def.Name).Msg("cache read failed")
		} else if ok {
			if err := s.authorize(cached, p); err != nil {
				return zero, err
			}
			return cached, nil
		}
	}

	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, s.notFoundErr(id)
		}
		return zero, err
	}
	if err := s.authorize(rec, p); err != nil {
		return zero, err
	}

	if s.def.OnRead != nil {
		s.def.OnRead(rec)
		if err := s.store.Update(ctx, rec); err != nil {
			s.log.Warn().Err(err).Str("resource", s.def.Name).Str("id", id).Msg("read hook persist failed")
		}
	} else if s.cache != nil {
		if err := s.cache.Set(ctx, s.def.Name, id, rec); err != nil {
			s.log.Warn().Err(err).Str("resource", s.def.Name).Msg("cache write failed")
		}
	}

	return rec, nil
}

// List returns one page of records with search, sort, and pagination applied.
// Owned resources are pre-filtered to the principal's records before
// pagination unless the principal is an admin.
func (s *Service[T]) List(ctx context.Context, q ports.ListQuery, p domain.Principal) ([]T, PageInfo, error) {
	s.normalize(&q)
	if s.def.Owned && !p.IsAdmin() {
		q.OwnerID = p.UserID
	}

	items, total, err := s.store.FindAll(ctx, q)
	if err != nil {
		s.log.Error().Err(err).Str("resource", s.def.Name).Msg("list failed")
		return nil, PageInfo{}, err
	}
	return items, NewPageInfo(total, q.Page, q.Limit), nil
}

// Update merges a validated patch onto an existing record via apply,
// re-checks uniqueness excluding the record itself, and refreshes UpdatedAt.
// ID and CreatedAt are never touched.
func (s *Service[T]) Update(ctx context.Context, id string, p domain.Principal, apply func(T) error) (T, error) {
	var zero T

	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, s.notFoundErr(id)
		}
		return zero, err
	}
	if err := s.authorize(rec, p); err != nil {
		return zero, err
	}

	if err := apply(rec); err != nil {
		return zero, err
	}

	if key := s.def.uniqueKeyOf(rec); key != "" {
		if existing, err := s.store.FindByUniqueKey(ctx, key); err == nil {
			if existing.RecordMeta().ID != id {
				return zero, s.conflictErr()
			}
		} else if !errors.Is(err, domain.ErrNotFound) {
			return zero, err
		}
	}

	rec.RecordMeta().UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("resource", s.def.Name).Str("id", id).Msg("update failed")
		return zero, err
	}

	s.invalidate(ctx, id)
	s.recordActivity(domain.ActionUpdated, id, p)
	s.log.Info().Str("resource", s.def.Name).Str("id", id).Msg("record updated")
	return rec, nil
}

// Delete removes a record permanently. Deleting an absent id fails with not
// found rather than succeeding silently.
func (s *Service[T]) Delete(ctx context.Context, id string, p domain.Principal) (T, error) {
	var zero T

	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, s.notFoundErr(id)
		}
		return zero, err
	}
	if err := s.authorize(rec, p); err != nil {
		return zero, err
	}
	if s.def.AdminDelete && !p.IsAdmin() {
		return zero, domain.ErrForbidden
	}

	removed, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, s.notFoundErr(id)
		}
		return zero, err
	}

	s.invalidate(ctx, id)
	s.recordActivity(domain.ActionDeleted, id, p)
	s.log.Info().Str("resource", s.def.Name).Str("id", id).Msg("record deleted")
	return removed, nil
}

func (s *Service[T]) authorize(rec T, p domain.Principal) error {
	if !s.def.Owned || p.IsAdmin() {
		return nil
	}
	if rec.RecordMeta().OwnerID != p.UserID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *Service[T]) normalize(q *ports.ListQuery) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.SortBy == "" {
		q.SortBy = s.def.DefaultSortBy
	}
	if q.SortOrder == "" {
		q.SortOrder = s.def.DefaultSortOrder
	}
	if q.SortOrder != "desc" {
		q.SortOrder = "asc"
	}
}

func (s *Service[T]) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, s.def.Name, id); err != nil {
		s.log.Warn().Err(err).Str("resource", s.def.Name).Str("id", id).Msg("cache invalidation failed")
	}
}

func (s *Service[T]) recordActivity(action, id string, p domain.Principal) {
	if s.activity == nil {
		return
	}
	s.activity.Record(domain.ActivityEntry{
		Resource:  s.def.Name,
		RecordID:  id,
		Action:    action,
		ActorID:   p.UserID,
		Timestamp: time.Now().UTC(),
	})
}

func (s *Service[T]) notFoundErr(id string) error {
	return fmt.Errorf("no %s exists with ID %q: %w", s.def.Name, id, domain.ErrNotFound)
}

func (s *Service[T]) conflictErr() error {
	return fmt.Errorf("a %s with this %s already exists: %w", s.def.Name, s.def.UniqueField, domain.ErrConflict)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
