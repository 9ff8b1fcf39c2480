package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxNameLength     = 255
	MaxRoleLength     = 100
	MaxCategoryLength = 50
)

// MemberRequest is the body of POST and PUT /api/members.
type MemberRequest struct {
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	ImageURL      string  `json:"imageUrl"`
	LattesURL     *string `json:"lattesUrl,omitempty"`
	ResearchTopic *string `json:"researchTopic,omitempty"`
	Category      string  `json:"category"`
}

func (r *MemberRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Category = strings.TrimSpace(r.Category)
	r.LattesURL = trimOptional(r.LattesURL)
	r.ResearchTopic = trimOptional(r.ResearchTopic)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// Validate checks required fields only. Unknown categories are accepted and
// sorted last.
func (r MemberRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, MaxNameLength)),
		validation.Field(&r.Role, validation.Required, validation.Length(1, MaxRoleLength)),
		validation.Field(&r.ImageURL, validation.Required),
		validation.Field(&r.Category, validation.Required, validation.Length(1, MaxCategoryLength)),
	)
}

func (r *MemberRequest) ToEntity() *Member {
	return &Member{
		Name:          r.Name,
		Role:          r.Role,
		ImageURL:      r.ImageURL,
		LattesURL:     r.LattesURL,
		ResearchTopic: r.ResearchTopic,
		Category:      r.Category,
	}
}
