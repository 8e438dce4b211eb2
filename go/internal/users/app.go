package users

import (
	"context"
	"fmt"

	"github.com/mcdev12/timesync/go/internal/models"
)

// TimezoneSeeder defines what the users app needs from the timezones layer:
// first-time users get a default set of dashboard timezones.
type TimezoneSeeder interface {
	SeedDefaults(ctx context.Context, userID int) error
}

// App implements user business logic.
type App struct {
	repo   Repository
	seeder TimezoneSeeder
}

// NewApp creates a new users application.
func NewApp(repo Repository, seeder TimezoneSeeder) *App {
	return &App{repo: repo, seeder: seeder}
}

// CreateOrUpdateUser upserts the user identified by the request's external
// uid and seeds default timezones when the user did not exist before.
func (a *App) CreateOrUpdateUser(ctx context.Context, req CreateOrUpdateUserRequest) (*models.User, error) {
	user, created, err := a.repo.CreateOrUpdateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	if created {
		if err := a.seeder.SeedDefaults(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("failed to seed default timezones: %w", err)
		}
	}
	return user, nil
}

// GetUserByExternalUID retrieves a user by external identity uid.
func (a *App) GetUserByExternalUID(ctx context.Context, externalUID string) (*models.User, error) {
	return a.repo.GetUserByExternalUID(ctx, externalUID)
}
