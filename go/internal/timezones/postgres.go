package timezones

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/timesync/go/internal/models"
)

// PostgresRepository implements Repository over a pgx pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed timezone repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int) ([]models.Timezone, error) {
	const query = `
		SELECT id, user_id, name, timezone, city, country, is_primary, created_at
		FROM timezones
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list timezones: %w", err)
	}
	defer rows.Close()

	var result []models.Timezone
	for rows.Next() {
		var tz models.Timezone
		if err := rows.Scan(&tz.ID, &tz.UserID, &tz.Name, &tz.Timezone, &tz.City, &tz.Country, &tz.IsPrimary, &tz.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan timezone: %w", err)
		}
		result = append(result, tz)
	}
	return result, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, req CreateTimezoneRequest) (*models.Timezone, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if req.IsPrimary {
		if _, err := tx.Exec(ctx, `UPDATE timezones SET is_primary = FALSE WHERE user_id = $1 AND is_primary`, req.UserID); err != nil {
			return nil, fmt.Errorf("failed to demote primary timezone: %w", err)
		}
	}

	const query = `
		INSERT INTO timezones (user_id, name, timezone, city, country, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, name, timezone, city, country, is_primary, created_at`

	var tz models.Timezone
	err = tx.QueryRow(ctx, query, req.UserID, req.Name, req.Timezone, req.City, req.Country, req.IsPrimary).Scan(
		&tz.ID, &tz.UserID, &tz.Name, &tz.Timezone, &tz.City, &tz.Country, &tz.IsPrimary, &tz.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return &tz, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID int) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM timezones WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("failed to delete timezone: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetPrimary(ctx context.Context, id, userID int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE timezones SET is_primary = FALSE WHERE user_id = $1 AND is_primary`, userID); err != nil {
		return fmt.Errorf("failed to demote primary timezone: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE timezones SET is_primary = TRUE WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("failed to set primary timezone: %w", err)
	}

	return tx.Commit(ctx)
}
