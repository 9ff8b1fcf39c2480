package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gpevim-backend/internal/domains/publication/model"
	"gpevim-backend/internal/shared/store"
)

const publicationColumns = `id, title, author, image_url, publication_url, description, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns the durable publication store backed by pgx.
func NewPostgresRepository(pool *pgxpool.Pool) store.Store[model.Publication] {
	return &postgresRepository{pool: pool}
}

func scanPublication(row pgx.Row) (*model.Publication, error) {
	var p model.Publication
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Author,
		&p.ImageURL,
		&p.PublicationURL,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]model.Publication, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+publicationColumns+` FROM publications ORDER BY created_at DESC`)
	if err != nil {
		return nil, store.Unavailable("list publications", err)
	}
	defer rows.Close()

	pubs := make([]model.Publication, 0)
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, store.Unavailable("scan publication", err)
		}
		pubs = append(pubs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Unavailable("list publications", err)
	}
	return pubs, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Publication, error) {
	p, err := scanPublication(r.pool.QueryRow(ctx,
		`SELECT `+publicationColumns+` FROM publications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, store.Unavailable("get publication", err)
	}
	return p, nil
}

func (r *postgresRepository) Create(ctx context.Context, in *model.Publication) (*model.Publication, error) {
	query := `
        INSERT INTO publications (title, author, image_url, publication_url, description)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + publicationColumns

	p, err := scanPublication(r.pool.QueryRow(ctx, query,
		in.Title,
		in.Author,
		in.ImageURL,
		in.PublicationURL,
		in.Description,
	))
	if err != nil {
		return nil, store.Unavailable("create publication", err)
	}
	return p, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, in *model.Publication) (*model.Publication, error) {
	query := `
        UPDATE publications
        SET title = $1, author = $2, image_url = $3, publication_url = $4, description = $5, updated_at = NOW()
        WHERE id = $6
        RETURNING ` + publicationColumns

	p, err := scanPublication(r.pool.QueryRow(ctx, query,
		in.Title,
		in.Author,
		in.ImageURL,
		in.PublicationURL,
		in.Description,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, store.Unavailable("update publication", err)
	}
	return p, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM publications WHERE id = $1`, id)
	if err != nil {
		return store.Unavailable("delete publication", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
