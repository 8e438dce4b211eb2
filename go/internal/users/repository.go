package users

import (
	"context"
	"errors"

	"github.com/mcdev12/timesync/go/internal/models"
)

// CreateOrUpdateUserRequest identifies a user by the uid issued by the
// external identity provider.
type CreateOrUpdateUserRequest struct {
	ExternalUID string  `json:"externalUid"`
	Email       string  `json:"email"`
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoUrl"`
}

// Repository implements user data access. CreateOrUpdateUser reports whether
// the user was newly created so the caller can seed first-time defaults.
type Repository interface {
	CreateOrUpdateUser(ctx context.Context, req CreateOrUpdateUserRequest) (*models.User, bool, error)
	GetUserByExternalUID(ctx context.Context, externalUID string) (*models.User, error)
}

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")
