package timezones

import (
	"context"
	"fmt"

	"github.com/mcdev12/timesync/go/internal/models"
)

// defaultTimezones is seeded onto every new user's dashboard.
var defaultTimezones = []CreateTimezoneRequest{
	{Name: "New York", Timezone: "America/New_York", City: "New York", Country: "United States", IsPrimary: true},
	{Name: "Los Angeles", Timezone: "America/Los_Angeles", City: "Los Angeles", Country: "United States"},
	{Name: "London", Timezone: "Europe/London", City: "London", Country: "United Kingdom"},
	{Name: "Tokyo", Timezone: "Asia/Tokyo", City: "Tokyo", Country: "Japan"},
}

// App implements timezone business logic.
type App struct {
	repo Repository
}

// NewApp creates a new timezones application.
func NewApp(repo Repository) *App {
	return &App{repo: repo}
}

// ListByUser returns the user's dashboard timezones.
func (a *App) ListByUser(ctx context.Context, userID int) ([]models.Timezone, error) {
	return a.repo.ListByUser(ctx, userID)
}

// Create adds a timezone to the user's dashboard.
func (a *App) Create(ctx context.Context, req CreateTimezoneRequest) (*models.Timezone, error) {
	return a.repo.Create(ctx, req)
}

// Delete removes the timezone if it belongs to the user.
func (a *App) Delete(ctx context.Context, id, userID int) error {
	return a.repo.Delete(ctx, id, userID)
}

// SetPrimary marks the timezone as the user's reference point, demoting any
// previous primary.
func (a *App) SetPrimary(ctx context.Context, id, userID int) error {
	return a.repo.SetPrimary(ctx, id, userID)
}

// SeedDefaults populates a new user's dashboard with the default timezone
// set.
func (a *App) SeedDefaults(ctx context.Context, userID int) error {
	for _, req := range defaultTimezones {
		req.UserID = userID
		if _, err := a.repo.Create(ctx, req); err != nil {
			return fmt.Errorf("failed to seed timezone %s: %w", req.Name, err)
		}
	}
	return nil
}
