package repository

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpevim-backend/internal/config"
	"gpevim-backend/internal/domains/publication/model"
	"gpevim-backend/internal/infrastructure/supabase"
	"gpevim-backend/internal/shared/store"
)

func newRepo(t *testing.T, h http.HandlerFunc) store.Store[model.Publication] {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewSupabaseRepository(supabase.NewClient(config.SupabaseConfig{URL: srv.URL, Key: "k"}))
}

func TestSupabaseRepository_List(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/publications", r.URL.Path)
		_, _ = io.WriteString(w, `[{"id":3,"title":"T","author":"A","image_url":"i","publication_url":"u","description":null,"created_at":"2024-05-01T12:00:00.123456+00:00","updated_at":null}]`)
	})

	pubs, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, pubs, 1)
	assert.Equal(t, int64(3), pubs[0].ID)
	assert.Nil(t, pubs[0].Description)
	assert.Equal(t, 2024, pubs[0].CreatedAt.Year())
}

func TestSupabaseRepository_NotFound(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = repo.Update(context.Background(), 99, &model.Publication{Title: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), 99), store.ErrNotFound)
}

func TestSupabaseRepository_ServerErrorIsUnavailable(t *testing.T) {
	repo := newRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, store.ErrUnavailable)

	_, err = repo.Create(context.Background(), &model.Publication{Title: "x"})
	assert.ErrorIs(t, err, store.ErrUnavailable)

	assert.ErrorIs(t, repo.Delete(context.Background(), 1), store.ErrUnavailable)
}
