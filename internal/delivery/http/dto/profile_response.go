package dto

import (
	"time"

	"talent-board/internal/domain/profile"
)

type ProjectLinkResponse struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type ProfileResponse struct {
	ID               string                `json:"id"`
	UserID           string                `json:"user_id"`
	Name             string                `json:"name"`
	Bio              string                `json:"bio,omitempty"`
	SkillTags        []string              `json:"skill_tags"`
	ProjectLinks     []ProjectLinkResponse `json:"project_links"`
	EndorsementCount int                   `json:"endorsement_count"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// FromProfile never exposes the telegram handle; that only leaves the
// system through the employer reveal-contact flow.
func FromProfile(p profile.Profile) ProfileResponse {
	links := make([]ProjectLinkResponse, 0, len(p.ProjectLinks))
	for _, l := range p.ProjectLinks {
		links = append(links, ProjectLinkResponse{Title: l.Title, URL: l.URL})
	}

	tags := p.SkillTags
	if tags == nil {
		tags = []string{}
	}

	return ProfileResponse{
		ID:               p.ID.String(),
		UserID:           p.UserID.String(),
		Name:             p.Name,
		Bio:              p.Bio,
		SkillTags:        tags,
		ProjectLinks:     links,
		EndorsementCount: p.EndorsementCount,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
