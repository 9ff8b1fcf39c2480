package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gpevim-backend/internal/domains/member/model"
	"gpevim-backend/internal/infrastructure/supabase"
	"gpevim-backend/internal/shared/store"
)

const membersTable = "members"

var errEmptyRepresentation = errors.New("insert returned no representation")

type supabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(client *supabase.Client) store.Store[model.Member] {
	return &supabaseRepository{client: client}
}

type memberRow struct {
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	ImageURL      string     `json:"image_url"`
	LattesURL     *string    `json:"lattes_url"`
	ResearchTopic *string    `json:"research_topic"`
	Category      string     `json:"category"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toRow(m *model.Member) memberRow {
	return memberRow{
		Name:          m.Name,
		Role:          m.Role,
		ImageURL:      m.ImageURL,
		LattesURL:     m.LattesURL,
		ResearchTopic: m.ResearchTopic,
		Category:      m.Category,
	}
}

func (r *supabaseRepository) List(ctx context.Context) ([]model.Member, error) {
	members := make([]model.Member, 0)
	err := r.client.Run(ctx, "list members", func() error {
		_, err := r.client.From(membersTable).Select("*", "", false).ExecuteTo(&members)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("list members", err)
	}
	return members, nil
}

func (r *supabaseRepository) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	var members []model.Member
	err := r.client.Run(ctx, "get member", func() error {
		_, err := r.client.From(membersTable).
			Select("*", "", false).
			Eq("id", strconv.FormatInt(id, 10)).
			ExecuteTo(&members)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("get member", err)
	}
	if len(members) == 0 {
		return nil, store.ErrNotFound
	}
	return &members[0], nil
}

func (r *supabaseRepository) Create(ctx context.Context, in *model.Member) (*model.Member, error) {
	var created []model.Member
	err := r.client.Run(ctx, "create member", func() error {
		_, err := r.client.From(membersTable).
			Insert(toRow(in), false, "", "representation", "").
			ExecuteTo(&created)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("create member", err)
	}
	if len(created) == 0 {
		return nil, store.Unavailable("create member", errEmptyRepresentation)
	}
	return &created[0], nil
}

func (r *supabaseRepository) Update(ctx context.Context, id int64, in *model.Member) (*model.Member, error) {
	row := toRow(in)
	now := time.Now().UTC()
	row.UpdatedAt = &now

	var updated []model.Member
	err := r.client.Run(ctx, "update member", func() error {
		_, err := r.client.From(membersTable).
			Update(row, "representation", "").
			Eq("id", strconv.FormatInt(id, 10)).
			ExecuteTo(&updated)
		return err
	})
	if err != nil {
		return nil, store.Unavailable("update member", err)
	}
	if len(updated) == 0 {
		return nil, store.ErrNotFound
	}
	return &updated[0], nil
}

func (r *supabaseRepository) Delete(ctx context.Context, id int64) error {
	var deleted []model.Member
	err := r.client.Run(ctx, "delete member", func() error {
		_, err := r.client.From(membersTable).
			Delete("representation", "").
			Eq("id", strconv.FormatInt(id, 10)).
			ExecuteTo(&deleted)
		return err
	})
	if err != nil {
		return store.Unavailable("delete member", err)
	}
	if len(deleted) == 0 {
		return store.ErrNotFound
	}
	return nil
}
