package model

import "time"

// Member categories, in display order.
const (
	CategoryCoordinators       = "coordenadores"
	CategoryCollaborators      = "colaboradores"
	CategoryUndergradResearch  = "iniciacao_cientifica"
	CategoryHighSchoolResearch = "iniciacao_cientifica_junior"
)

// Member is a research-group member card.
type Member struct {
	ID            int64      `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Role          string     `json:"role" db:"role"`
	ImageURL      string     `json:"image_url" db:"image_url"`
	LattesURL     *string    `json:"lattes_url" db:"lattes_url"`
	ResearchTopic *string    `json:"research_topic" db:"research_topic"`
	Category      string     `json:"category" db:"category"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

func (m *Member) GetID() int64             { return m.ID }
func (m *Member) SetID(id int64)           { m.ID = id }
func (m *Member) GetCreatedAt() time.Time  { return m.CreatedAt }
func (m *Member) SetCreatedAt(t time.Time) { m.CreatedAt = t }
func (m *Member) SetUpdatedAt(t time.Time) { m.UpdatedAt = &t }
