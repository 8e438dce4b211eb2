package models

import "time"

// User represents a user in the system. ExternalUID is the identifier issued
// by the external identity provider; ids are assigned by the storage layer.
type User struct {
	ID          int       `json:"id"`
	ExternalUID string    `json:"externalUid"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName,omitempty"`
	PhotoURL    *string   `json:"photoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
