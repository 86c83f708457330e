package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

type ProjectLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Profile belongs to exactly one user (unique user_id). EndorsementCount
// is denormalized and must always equal the number of live endorsement
// rows referencing the profile.
type Profile struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Name             string
	Bio              string
	TelegramHandle   string
	SkillTags        []string
	ProjectLinks     []ProjectLink
	EndorsementCount int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
