package model

import "time"

// Publication is a research-group publication card.
type Publication struct {
	ID             int64      `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Author         string     `json:"author" db:"author"`
	ImageURL       string     `json:"image_url" db:"image_url"`
	PublicationURL string     `json:"publication_url" db:"publication_url"`
	Description    *string    `json:"description" db:"description"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

func (p *Publication) GetID() int64             { return p.ID }
func (p *Publication) SetID(id int64)           { p.ID = id }
func (p *Publication) GetCreatedAt() time.Time  { return p.CreatedAt }
func (p *Publication) SetCreatedAt(t time.Time) { p.CreatedAt = t }
func (p *Publication) SetUpdatedAt(t time.Time) { p.UpdatedAt = &t }
