package repository

import (
	"context"

	"gpevim-backend/internal/domains/auth/model"
)

// RepositoryInterface is the admin credential store. It never falls back to
// process memory.
type RepositoryInterface interface {
	// GetByUsername returns model.ErrAdminNotFound when no row matches and a
	// store.ErrUnavailable-wrapped error when the backend cannot answer.
	GetByUsername(ctx context.Context, username string) (*model.AdminUser, error)

	// EnsureAdmin inserts username with passwordHash unless it already exists.
	EnsureAdmin(ctx context.Context, username, passwordHash string) (bool, error)

	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}
