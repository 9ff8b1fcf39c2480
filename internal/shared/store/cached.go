package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"gpevim-backend/pkg/cache"
)

// Cached is a read-through decorator for a durable Store. Cache failures
// are logged and the call goes straight to the backend.
type Cached[T any] struct {
	next   Store[T]
	cache  cache.Cache
	prefix string
	ttl    time.Duration
}

func NewCached[T any](next Store[T], c cache.Cache, prefix string, ttl time.Duration) *Cached[T] {
	return &Cached[T]{next: next, cache: c, prefix: prefix, ttl: ttl}
}

func (s *Cached[T]) listKey() string        { return s.prefix + ":list" }
func (s *Cached[T]) itemKey(id int64) string { return fmt.Sprintf("%s:item:%d", s.prefix, id) }

func (s *Cached[T]) List(ctx context.Context) ([]T, error) {
	var cached []T
	if found, err := s.cache.Get(ctx, s.listKey(), &cached); err != nil {
		log.Warn().Err(err).Str("key", s.listKey()).Msg("cache get failed")
	} else if found {
		return cached, nil
	}

	list, err := s.next.List(ctx)
	if err != nil {
		return nil, err
	}
	s.put(ctx, s.listKey(), list)
	return list, nil
}

func (s *Cached[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var cached T
	if found, err := s.cache.Get(ctx, s.itemKey(id), &cached); err != nil {
		log.Warn().Err(err).Str("key", s.itemKey(id)).Msg("cache get failed")
	} else if found {
		return &cached, nil
	}

	rec, err := s.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.put(ctx, s.itemKey(id), rec)
	return rec, nil
}

func (s *Cached[T]) Create(ctx context.Context, rec *T) (*T, error) {
	created, err := s.next.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Cached[T]) Update(ctx context.Context, id int64, rec *T) (*T, error) {
	updated, err := s.next.Update(ctx, id, rec)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, s.itemKey(id))
	return updated, nil
}

func (s *Cached[T]) Delete(ctx context.Context, id int64) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, s.itemKey(id))
	return nil
}

func (s *Cached[T]) put(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *Cached[T]) invalidate(ctx context.Context, extra ...string) {
	keys := append([]string{s.listKey()}, extra...)
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}
