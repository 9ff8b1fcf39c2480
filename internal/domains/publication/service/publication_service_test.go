package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpevim-backend/internal/domains/publication/model"
	"gpevim-backend/internal/shared/store"
)

// fixedStore lists canned records and delegates writes to a memory store.
type fixedStore struct {
	store.Store[model.Publication]
	list []model.Publication
}

func (s fixedStore) List(context.Context) ([]model.Publication, error) { return s.list, nil }

func TestList_NewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewPublicationService(fixedStore{list: []model.Publication{
		{ID: 1, Title: "old", CreatedAt: base},
		{ID: 2, Title: "newest", CreatedAt: base.Add(48 * time.Hour)},
		{ID: 3, Title: "middle", CreatedAt: base.Add(time.Hour)},
	}})

	pubs, err := svc.List(context.Background())
	require.NoError(t, err)

	got := make([]string, len(pubs))
	for i, p := range pubs {
		got[i] = p.Title
	}
	assert.Equal(t, []string{"newest", "middle", "old"}, got)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := NewPublicationService(fixedStore{})

	pubs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, pubs)
	assert.Empty(t, pubs)
}

func TestCreate_ValidatesBeforeStoring(t *testing.T) {
	mem := store.NewMemory[model.Publication](nil)
	svc := NewPublicationService(mem)

	_, err := svc.Create(context.Background(), &model.PublicationRequest{Title: "  "})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.ToHTTPStatus(err))
	assert.Zero(t, mem.Len())

	pub, err := svc.Create(context.Background(), &model.PublicationRequest{
		Title:          " Ensino de Física ",
		Author:         "Silva",
		ImageURL:       "/uploads/publications-images/public/1_capa.jpg",
		PublicationURL: "https://doi.org/10.1000/xyz",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ensino de Física", pub.Title)
	assert.Equal(t, 1, mem.Len())
}

func TestInvalidIDs(t *testing.T) {
	svc := NewPublicationService(store.NewMemory[model.Publication](nil))

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, model.ErrInvalidID)
	_, err = svc.Update(context.Background(), 0, &model.PublicationRequest{Title: "x"})
	assert.ErrorIs(t, err, model.ErrInvalidID)
	assert.ErrorIs(t, svc.Delete(context.Background(), -1), model.ErrInvalidID)
}
