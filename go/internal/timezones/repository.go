package timezones

import (
	"context"

	"github.com/mcdev12/timesync/go/internal/models"
)

// CreateTimezoneRequest describes a timezone to add to a user's dashboard.
type CreateTimezoneRequest struct {
	UserID    int    `json:"userId"`
	Name      string `json:"name"`
	Timezone  string `json:"timezone"`
	City      string `json:"city"`
	Country   string `json:"country"`
	IsPrimary bool   `json:"isPrimary"`
}

// Repository implements timezone data access. Creating a primary timezone
// demotes the user's previous primary; Delete and SetPrimary are scoped by
// userID so a user cannot touch another user's rows.
type Repository interface {
	ListByUser(ctx context.Context, userID int) ([]models.Timezone, error)
	Create(ctx context.Context, req CreateTimezoneRequest) (*models.Timezone, error)
	Delete(ctx context.Context, id, userID int) error
	SetPrimary(ctx context.Context, id, userID int) error
}
