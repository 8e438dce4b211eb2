package teams

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/timesync/go/internal/models"
)

// PostgresRepository implements Repository over a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed team repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) CreateTeam(ctx context.Context, req CreateTeamRequest) (*models.Team, error) {
	settings := req.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal team settings: %w", err)
	}

	const query = `
		INSERT INTO teams (name, owner_id, share_id, settings)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, owner_id, share_id, settings, created_at`

	var team models.Team
	var rawSettings []byte
	err = r.pool.QueryRow(ctx, query, req.Name, req.OwnerID, req.ShareID, settingsJSON).Scan(
		&team.ID, &team.Name, &team.OwnerID, &team.ShareID, &rawSettings, &team.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	if err := json.Unmarshal(rawSettings, &team.Settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team settings: %w", err)
	}
	return &team, nil
}

func (r *PostgresRepository) GetTeamByShareID(ctx context.Context, shareID string) (*models.Team, error) {
	const query = `
		SELECT id, name, owner_id, share_id, settings, created_at
		FROM teams
		WHERE share_id = $1`

	var team models.Team
	var rawSettings []byte
	err := r.pool.QueryRow(ctx, query, shareID).Scan(
		&team.ID, &team.Name, &team.OwnerID, &team.ShareID, &rawSettings, &team.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team by share id: %w", err)
	}
	if err := json.Unmarshal(rawSettings, &team.Settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal team settings: %w", err)
	}
	return &team, nil
}

func (r *PostgresRepository) AddTeamTimezone(ctx context.Context, req AddTeamTimezoneRequest) (*models.TeamTimezone, error) {
	const query = `
		INSERT INTO team_timezones (team_id, name, timezone, city, country, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, team_id, name, timezone, city, country, is_primary, created_at`

	var tz models.TeamTimezone
	err := r.pool.QueryRow(ctx, query, req.TeamID, req.Name, req.Timezone, req.City, req.Country, req.IsPrimary).Scan(
		&tz.ID, &tz.TeamID, &tz.Name, &tz.Timezone, &tz.City, &tz.Country, &tz.IsPrimary, &tz.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add team timezone: %w", err)
	}
	return &tz, nil
}

func (r *PostgresRepository) ListTeamTimezones(ctx context.Context, teamID int) ([]models.TeamTimezone, error) {
	const query = `
		SELECT id, team_id, name, timezone, city, country, is_primary, created_at
		FROM team_timezones
		WHERE team_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team timezones: %w", err)
	}
	defer rows.Close()

	var result []models.TeamTimezone
	for rows.Next() {
		var tz models.TeamTimezone
		if err := rows.Scan(&tz.ID, &tz.TeamID, &tz.Name, &tz.Timezone, &tz.City, &tz.Country, &tz.IsPrimary, &tz.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team timezone: %w", err)
		}
		result = append(result, tz)
	}
	return result, rows.Err()
}
