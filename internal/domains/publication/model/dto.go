package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxTitleLength  = 255
	MaxAuthorLength = 255
)

// PublicationRequest is the body of POST and PUT /api/publications.
type PublicationRequest struct {
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	ImageURL       string  `json:"imageUrl"`
	PublicationURL string  `json:"publicationUrl"`
	Description    *string `json:"description,omitempty"`
}

// Normalize trims every field; a blank description becomes nil.
func (r *PublicationRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.PublicationURL = strings.TrimSpace(r.PublicationURL)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		if d == "" {
			r.Description = nil
		} else {
			r.Description = &d
		}
	}
}

func (r PublicationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, MaxAuthorLength)),
		validation.Field(&r.ImageURL, validation.Required),
		validation.Field(&r.PublicationURL, validation.Required),
	)
}

func (r *PublicationRequest) ToEntity() *Publication {
	return &Publication{
		Title:          r.Title,
		Author:         r.Author,
		ImageURL:       r.ImageURL,
		PublicationURL: r.PublicationURL,
		Description:    r.Description,
	}
}
