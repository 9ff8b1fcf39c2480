package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/supabase-community/postgrest-go"

	"gpevim-backend/internal/domains/publication/model"
	"gpevim-backend/internal/infrastructure/supabase"
	"gpevim-backend/internal/shared/store"
)

const publicationsTable = "publications"

var errEmptyRepresentation = errors.New("insert returned no representation")

type supabaseRepository struct {
	client *supabase.Client
}

// NewSupabaseRepository returns the durable publication store backed by
// Supabase PostgREST.
func NewSupabaseRepository(client *supabase.Client) store.Store[model.Publication] {
	return &supabaseRepository{client: client}
}

// publicationRow is the insert/update payload; the server owns id and
// created_at.
type publicationRow struct {
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	ImageURL       string     `json:"image_url"`
	PublicationURL string     `json:"publication_url"`
	Description    *string    `json:"description"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func toRow(p *model.Publication) publicationRow {
	return publicationRow{
		Title:          p.Title,
		Author:         p.Author,
		ImageURL:       p.ImageURL,
		PublicationURL: p.PublicationURL,
		Description:    p.Description,
	}
}

func (r *supabaseRepository) List(ctx context.Context) ([]model.Publication, error) {
	pubs := make([]model.Publication, 0)
	err := r.client.Run(ctx, "list publications", func() error {
		_, err := r.client.From(publicationsTable).
			Select("*", "", false).
			Order("created_at", &postgrest.OrderOpts{Ascending: false}).
			ExecuteTo(&pubs)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("list publications", err)
	}
	return pubs, nil
}

func (r *supabaseRepository) GetByID(ctx context.Context, id int64) (*model.Publication, error) {
	var pubs []model.Publication
	err := r.client.Run(ctx, "get publication", func() error {
		_, err := r.client.From(publicationsTable).
			Select("*", "", false).
			Eq("id", strconv.FormatInt(id, 10)).
			ExecuteTo(&pubs)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("get publication", err)
	}
	if len(pubs) == 0 {
		return nil, store.ErrNotFound
	}
	return &pubs[0], nil
}

func (r *supabaseRepository) Create(ctx context.Context, in *model.Publication) (*model.Publication, error) {
	var created []model.Publication
	err := r.client.Run(ctx, "create publication", func() error {
		_, err := r.client.From(publicationsTable).
			Insert(toRow(in), false, "", "representation", "").
			ExecuteTo(&created)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("create publication", err)
	}
	if len(created) == 0 {
		return nil, store.Unavailable("create publication", errEmptyRepresentation)
	}
	return &created[0], nil
}

func (r *supabaseRepository) Update(ctx context.Context, id int64, in *model.Publication) (*model.Publication, error) {
	row := toRow(in)
	now := time.Now().UTC()
	row.UpdatedAt = &now

	var updated []model.Publication
	err := r.client.Run(ctx, "update publication", func() error {
		_, err := r.client.From(publicationsTable).
			Update(row, "representation", "").
			Eq("id", strconv.FormatInt(id, 10)).
			ExecuteTo(&updated)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("update publication", err)
	}
	if len(updated) == 0 {
		return nil, store.ErrNotFound
	}
	return &updated[0], nil
}

func (r *supabaseRepository) Delete(ctx context.Context, id int64) error {
	var deleted []model.Publication
	err := r.client.Run(ctx, "delete publication", func() error {
		_, err := r.client.From(publicationsTable).
			Delete("representation", "").
			Eq("id", strconv.FormatInt(id, 10)).
			ExecuteTo(&deleted)
		return err
	})
	if err != nil {
		return store.Unavailable("delete publication", err)
	}
	if len(deleted) == 0 {
		return store.ErrNotFound
	}
	return nil
}
