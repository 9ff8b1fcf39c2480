package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gpevim-backend/internal/domains/member/model"
	"gpevim-backend/internal/shared/store"
)

const memberColumns = `id, name, role, image_url, lattes_url, research_topic, category, created_at, updated_at`

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) store.Store[model.Member] {
	return &postgresRepository{pool: pool}
}

func scanMember(row pgx.Row) (*model.Member, error) {
	var m model.Member
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Role,
		&m.ImageURL,
		&m.LattesURL,
		&m.ResearchTopic,
		&m.Category,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List leaves ordering to the service; collation is not done in SQL.
func (r *postgresRepository) List(ctx context.Context) ([]model.Member, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+memberColumns+` FROM members`)
	if err != nil {
		return nil, store.Unavailable("list members", err)
	}
	defer rows.Close()

	members := make([]model.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, store.Unavailable("scan member", err)
		}
		members = append(members, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Unavailable("list members", err)
	}
	return members, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	m, err := scanMember(r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, store.Unavailable("get member", err)
	}
	return m, nil
}

func (r *postgresRepository) Create(ctx context.Context, in *model.Member) (*model.Member, error) {
	query := `
        INSERT INTO members (name, role, image_url, lattes_url, research_topic, category)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + memberColumns

	m, err := scanMember(r.pool.QueryRow(ctx, query,
		in.Name,
		in.Role,
		in.ImageURL,
		in.LattesURL,
		in.ResearchTopic,
		in.Category,
	))
	if err != nil {
		return nil, store.Unavailable("create member", err)
	}
	return m, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, in *model.Member) (*model.Member, error) {
	query := `
        UPDATE members
        SET name = $1, role = $2, image_url = $3, lattes_url = $4, research_topic = $5, category = $6, updated_at = NOW()
        WHERE id = $7
        RETURNING ` + memberColumns

	m, err := scanMember(r.pool.QueryRow(ctx, query,
		in.Name,
		in.Role,
		in.ImageURL,
		in.LattesURL,
		in.ResearchTopic,
		in.Category,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, store.Unavailable("update member", err)
	}
	return m, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return store.Unavailable("delete member", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
