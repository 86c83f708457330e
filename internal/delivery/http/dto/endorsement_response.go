package dto

import (
	"time"

	endorsementuc "talent-board/internal/usecase/endorsement"
)

type EndorsementResponse struct {
	ID               string    `json:"id"`
	EndorserWallet   string    `json:"endorser_wallet"`
	ProfileID        string    `json:"profile_id"`
	Message          string    `json:"message"`
	RelationshipTag  string    `json:"relationship_tag"`
	EndorserName     string    `json:"endorser_name"`
	EndorserTelegram string    `json:"endorser_telegram,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func FromProfileEndorsements(items []endorsementuc.ProfileEndorsement) []EndorsementResponse {
	out := make([]EndorsementResponse, 0, len(items))
	for _, e := range items {
		out = append(out, EndorsementResponse{
			ID:               e.ID.String(),
			EndorserWallet:   e.EndorserWallet,
			ProfileID:        e.ProfileID.String(),
			Message:          e.Message,
			RelationshipTag:  e.RelationshipTag,
			EndorserName:     e.EndorserName,
			EndorserTelegram: e.EndorserTelegram,
			CreatedAt:        e.CreatedAt,
		})
	}
	return out
}
