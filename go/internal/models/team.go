package models

import "time"

// Team is a named group of users whose socket connections share a broadcast
// scope. ShareID is the opaque token granting read-only access to the team's
// timezone snapshot.
type Team struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	OwnerID   int            `json:"ownerId"`
	ShareID   string         `json:"shareId"`
	Settings  map[string]any `json:"settings"`
	CreatedAt time.Time      `json:"createdAt"`
}
