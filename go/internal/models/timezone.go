package models

import "time"

// Timezone is one named timezone on a user's dashboard. Timezone holds the
// IANA zone name; at most one timezone per user is primary.
type Timezone struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	IsPrimary bool      `json:"isPrimary"`
	CreatedAt time.Time `json:"createdAt"`
}

// TeamTimezone is a timezone snapshot copied into a team when the team is
// created; it is what a share link exposes read-only.
type TeamTimezone struct {
	ID        int       `json:"id"`
	TeamID    int       `json:"teamId"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	IsPrimary bool      `json:"isPrimary"`
	CreatedAt time.Time `json:"createdAt"`
}
