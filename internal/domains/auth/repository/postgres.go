package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gpevim-backend/internal/domains/auth/model"
	"gpevim-backend/internal/shared/store"
	"gpevim-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var u model.AdminUser
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, created_at FROM admin_users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAdminNotFound
		}
		return nil, store.Unavailable("get admin", err)
	}
	return &u, nil
}

// EnsureAdmin checks and inserts inside one transaction.
func (r *postgresRepository) EnsureAdmin(ctx context.Context, username, passwordHash string) (bool, error) {
	created, err := database.InTx(ctx, r.pool, func(tx pgx.Tx) (bool, error) {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM admin_users WHERE username = $1)`, username,
		).Scan(&exists); err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO admin_users (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
			username, passwordHash,
		)
		return err == nil, err
	})
	if err != nil {
		return false, store.Unavailable("seed admin", err)
	}
	return created, nil
}

func (r *postgresRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE admin_users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return store.Unavailable("update admin password", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAdminNotFound
	}
	return nil
}
