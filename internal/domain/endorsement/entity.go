package endorsement

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("endorsement not found")

// MinMessageLength applies to the trimmed message; the boundary is
// inclusive, exactly 100 characters is accepted.
const MinMessageLength = 100

// RelationshipTags is the closed set of "how do you know this person"
// descriptions an endorser can pick from.
var RelationshipTags = []string{
	"worked_together",
	"hired_them",
	"mentored_them",
	"know_personally",
	"community_member",
}

func IsValidRelationshipTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, t := range RelationshipTags {
		if t == tag {
			return true
		}
	}
	return false
}

// Endorsement references its endorser by wallet, not ownership; at most
// one live row exists per (endorser_wallet, profile_id) pair.
type Endorsement struct {
	ID              uuid.UUID
	EndorserWallet  string
	ProfileID       uuid.UUID
	Message         string
	RelationshipTag string
	CreatedAt       time.Time
}
