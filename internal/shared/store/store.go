// Package store defines the record storage contract shared by every
// backend (postgres, supabase, memory) and the errors that drive fallback.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound means the backend answered and the record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable means the backend could not answer at all.
	ErrUnavailable = errors.New("storage backend unavailable")
)

// Record is implemented by every entity kept in a Store.
type Record interface {
	GetID() int64
	SetID(id int64)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
}

// Store is the CRUD contract. Create and Update return the stored
// representation, including backend-assigned fields.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id int64, rec *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Unavailable wraps a backend failure so that errors.Is(err, ErrUnavailable)
// holds while the cause stays inspectable.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
