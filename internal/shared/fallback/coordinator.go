// Package fallback routes record operations to the durable backend and, when
// it is unavailable, to the process-local store.
package fallback

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"gpevim-backend/internal/infrastructure/metrics"
	"gpevim-backend/internal/shared/store"
)

// Coordinator implements store.Store[T] over a durable and an optional local
// backend. With a nil local store every durable failure is returned as is.
type Coordinator[T any] struct {
	kind    string
	durable store.Store[T]
	local   store.Store[T]
}

func NewCoordinator[T any](kind string, durable, local store.Store[T]) *Coordinator[T] {
	return &Coordinator[T]{kind: kind, durable: durable, local: local}
}

// shouldFallback is the single retry policy: only an unreachable backend
// sends an operation to the local store.
func (c *Coordinator[T]) shouldFallback(err error) bool {
	return c.local != nil && store.IsUnavailable(err)
}

func (c *Coordinator[T]) activated(op string, err error) {
	log.Warn().Err(err).Str("kind", c.kind).Str("op", op).Msg("durable backend unavailable, using local store")
	metrics.FallbackActivated(c.kind, op)
}

// List concatenates durable and local records, durable first. Ordering is
// the caller's job.
func (c *Coordinator[T]) List(ctx context.Context) ([]T, error) {
	durable, err := c.durable.List(ctx)
	if err != nil {
		if !c.shouldFallback(err) {
			return nil, err
		}
		c.activated("list", err)
		durable = nil
	}

	if c.local == nil {
		return durable, nil
	}

	local, err := c.local.List(ctx)
	if err != nil {
		return nil, err
	}
	return append(durable, local...), nil
}

func (c *Coordinator[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	rec, err := c.durable.GetByID(ctx, id)
	if err == nil || c.local == nil || !store.IsNotFound(err) {
		return rec, err
	}
	return c.local.GetByID(ctx, id)
}

func (c *Coordinator[T]) Create(ctx context.Context, rec *T) (*T, error) {
	created, err := c.durable.Create(ctx, rec)
	if err == nil || !c.shouldFallback(err) {
		return created, err
	}

	c.activated("create", err)
	return c.local.Create(ctx, rec)
}

func (c *Coordinator[T]) Update(ctx context.Context, id int64, rec *T) (*T, error) {
	updated, err := c.durable.Update(ctx, id, rec)
	if err == nil || c.local == nil || !store.IsNotFound(err) {
		return updated, err
	}
	return c.local.Update(ctx, id, rec)
}

// Delete tries the durable store, then the local one when the record was
// not found there or the backend could not be reached.
func (c *Coordinator[T]) Delete(ctx context.Context, id int64) error {
	err := c.durable.Delete(ctx, id)
	if err == nil || c.local == nil {
		return err
	}
	if !store.IsNotFound(err) && !store.IsUnavailable(err) {
		return err
	}
	if store.IsUnavailable(err) {
		c.activated("delete", err)
	}

	if lerr := c.local.Delete(ctx, id); lerr != nil {
		if errors.Is(lerr, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return lerr
	}
	return nil
}
