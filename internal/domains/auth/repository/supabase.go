package repository

import (
	"context"
	"errors"
	"strconv"

	"gpevim-backend/internal/domains/auth/model"
	"gpevim-backend/internal/infrastructure/supabase"
	"gpevim-backend/internal/shared/store"
)

const adminUsersTable = "admin_users"

type supabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(client *supabase.Client) RepositoryInterface {
	return &supabaseRepository{client: client}
}

func (r *supabaseRepository) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var users []model.AdminUser
	err := r.client.Run(ctx, "get admin", func() error {
		_, err := r.client.From(adminUsersTable).
			Select("id,username,password_hash,created_at", "", false).
			Eq("username", username).
			ExecuteTo(&users)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("get admin", err)
	}
	if len(users) == 0 {
		return nil, model.ErrAdminNotFound
	}
	return &users[0], nil
}

func (r *supabaseRepository) EnsureAdmin(ctx context.Context, username, passwordHash string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, model.ErrAdminNotFound):
		return false, err
	}

	row := map[string]string{"username": username, "password_hash": passwordHash}
	err = r.client.Run(ctx, "seed admin", func() error {
		_, _, err := r.client.From(adminUsersTable).Insert(row, false, "", "minimal", "").Execute()
		return err
	})
	if err != nil {
		return false, store.Unavailable("seed admin", err)
	}
	return true, nil
}

func (r *supabaseRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	var updated []model.AdminUser
	patch := map[string]string{"password_hash": passwordHash}
	err := r.client.Run(ctx, "update admin password", func() error {
		_, err := r.client.From(adminUsersTable).
			Update(patch, "representation", "").
			Eq("id", strconv.FormatInt(id, 10)).
			ExecuteTo(&updated)
		return err
	})
	if err != nil {
		return store.Unavailable("update admin password", err)
	}
	if len(updated) == 0 {
		return model.ErrAdminNotFound
	}
	return nil
}
