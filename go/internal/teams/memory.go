package teams

import (
	"context"
	"sync"
	"time"

	"github.com/mcdev12/timesync/go/internal/models"
)

// MemRepository is the in-memory team store.
type MemRepository struct {
	mu            sync.RWMutex
	teams         map[int]*models.Team
	teamTimezones map[int]*models.TeamTimezone
	nextTeamID    int
	nextTzID      int
}

// NewMemRepository creates an empty in-memory team store.
func NewMemRepository() *MemRepository {
	return &MemRepository{
		teams:         make(map[int]*models.Team),
		teamTimezones: make(map[int]*models.TeamTimezone),
		nextTeamID:    1,
		nextTzID:      1,
	}
}

func (r *MemRepository) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings := req.Settings
	if settings == nil {
		settings = map[string]any{}
	}

	team := &models.Team{
		ID:        r.nextTeamID,
		Name:      req.Name,
		OwnerID:   req.OwnerID,
		ShareID:   req.ShareID,
		Settings:  settings,
		CreatedAt: time.Now(),
	}
	r.nextTeamID++
	r.teams[team.ID] = team
	result := *team
	return &result, nil
}

func (r *MemRepository) GetTeamByShareID(ctx context.Context, shareID string) (*models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, team := range r.teams {
		if team.ShareID == shareID {
			result := *team
			return &result, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemRepository) AddTeamTimezone(ctx context.Context, req AddTeamTimezoneRequest) (*models.TeamTimezone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tz := &models.TeamTimezone{
		ID:        r.nextTzID,
		TeamID:    req.TeamID,
		Name:      req.Name,
		Timezone:  req.Timezone,
		City:      req.City,
		Country:   req.Country,
		IsPrimary: req.IsPrimary,
		CreatedAt: time.Now(),
	}
	r.nextTzID++
	r.teamTimezones[tz.ID] = tz
	result := *tz
	return &result, nil
}

func (r *MemRepository) ListTeamTimezones(ctx context.Context, teamID int) ([]models.TeamTimezone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []models.TeamTimezone
	for _, tz := range r.teamTimezones {
		if tz.TeamID == teamID {
			result = append(result, *tz)
		}
	}
	return result, nil
}
