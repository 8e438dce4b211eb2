package teams

import (
	"context"
	"errors"

	"github.com/mcdev12/timesync/go/internal/models"
)

// CreateTeamRequest describes a team to create. ShareID is generated by the
// app layer before the request reaches the repository.
type CreateTeamRequest struct {
	Name     string         `json:"name"`
	OwnerID  int            `json:"ownerId"`
	ShareID  string         `json:"shareId"`
	Settings map[string]any `json:"settings"`
}

// AddTeamTimezoneRequest describes one timezone snapshot row for a team.
type AddTeamTimezoneRequest struct {
	TeamID    int
	Name      string
	Timezone  string
	City      string
	Country   string
	IsPrimary bool
}

// Repository implements team data access.
type Repository interface {
	CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error)
	GetTeamByShareID(ctx context.Context, shareID string) (*models.Team, error)
	AddTeamTimezone(ctx context.Context, req AddTeamTimezoneRequest) (*models.TeamTimezone, error)
	ListTeamTimezones(ctx context.Context, teamID int) ([]models.TeamTimezone, error)
}

// ErrNotFound is returned when no team matches the lookup.
var ErrNotFound = errors.New("team not found")
