package teams

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/timesync/go/internal/models"
)

// TimezoneLister defines what the teams app needs from the timezones layer:
// the owner's dashboard timezones are snapshotted into a new team.
type TimezoneLister interface {
	ListByUser(ctx context.Context, userID int) ([]models.Timezone, error)
}

// SharedTeam is a team together with its read-only timezone snapshot, as
// exposed by a share link.
type SharedTeam struct {
	models.Team
	Timezones []models.TeamTimezone `json:"timezones"`
}

// App implements team business logic.
type App struct {
	repo      Repository
	timezones TimezoneLister
}

// NewApp creates a new teams application.
func NewApp(repo Repository, timezones TimezoneLister) *App {
	return &App{repo: repo, timezones: timezones}
}

// CreateTeam creates a team owned by ownerID, generates its share token, and
// copies the owner's dashboard timezones into the team snapshot.
func (a *App) CreateTeam(ctx context.Context, ownerID int, name string, settings map[string]any) (*models.Team, error) {
	team, err := a.repo.CreateTeam(ctx, CreateTeamRequest{
		Name:     name,
		OwnerID:  ownerID,
		ShareID:  newShareID(),
		Settings: settings,
	})
	if err != nil {
		return nil, err
	}

	if err := a.copyUserTimezones(ctx, ownerID, team.ID); err != nil {
		return nil, fmt.Errorf("failed to copy owner timezones: %w", err)
	}
	return team, nil
}

// GetSharedTeam resolves a share token to the team and its timezone snapshot.
func (a *App) GetSharedTeam(ctx context.Context, shareID string) (*SharedTeam, error) {
	team, err := a.repo.GetTeamByShareID(ctx, shareID)
	if err != nil {
		return nil, err
	}

	tzs, err := a.repo.ListTeamTimezones(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team timezones: %w", err)
	}
	return &SharedTeam{Team: *team, Timezones: tzs}, nil
}

func (a *App) copyUserTimezones(ctx context.Context, userID, teamID int) error {
	tzs, err := a.timezones.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, tz := range tzs {
		if _, err := a.repo.AddTeamTimezone(ctx, AddTeamTimezoneRequest{
			TeamID:    teamID,
			Name:      tz.Name,
			Timezone:  tz.Timezone,
			City:      tz.City,
			Country:   tz.Country,
			IsPrimary: tz.IsPrimary,
		}); err != nil {
			return err
		}
	}
	return nil
}

// newShareID generates an opaque share token.
func newShareID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
