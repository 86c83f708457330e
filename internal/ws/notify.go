package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

// EndorsementCreatedEvent tells open seeker pages to refresh counts for
// a profile without polling.
type EndorsementCreatedEvent struct {
	Type           string `json:"type"`
	ProfileID      string `json:"profile_id"`
	EndorserWallet string `json:"endorser_wallet"`
	Timestamp      string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyEndorsementCreated(profileID string, endorserWallet string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if profileID == "" {
		return
	}

	evt := EndorsementCreatedEvent{
		Type:           "endorsement_created",
		ProfileID:      profileID,
		EndorserWallet: endorserWallet,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
