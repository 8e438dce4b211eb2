package users

import (
	"context"
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

// NewPostgresRepository creates a Postgres-backed user repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) CreateOrUpdateUser(ctx context.Context, req CreateOrUpdateUserRequest) (*models.User, bool, error) {
	const query = `
		INSERT INTO users (external_uid, email, display_name, photo_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (external_uid) DO UPDATE
		SET email = EXCLUDED.email,
		    display_name = EXCLUDED.display_name,
		    photo_url = EXCLUDED.photo_url
		RETURNING id, external_uid, email, display_name, photo_url, created_at,
		          (xmax = 0) AS inserted`

	var user models.User
	var inserted bool
	err := r.pool.QueryRow(ctx, query, req.ExternalUID, req.Email, req.DisplayName, req.PhotoURL).Scan(
		&user.ID, &user.ExternalUID, &user.Email, &user.DisplayName, &user.PhotoURL, &user.CreatedAt, &inserted,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create or update user: %w", err)
	}
	return &user, inserted, nil
}

func (r *PostgresRepository) GetUserByExternalUID(ctx context.Context, externalUID string) (*models.User, error) {
	const query = `
		SELECT id, external_uid, email, display_name, photo_url, created_at
		FROM users
		WHERE external_uid = $1`

	var user models.User
	err := r.pool.QueryRow(ctx, query, externalUID).Scan(
		&user.ID, &user.ExternalUID, &user.Email, &user.DisplayName, &user.PhotoURL, &user.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by external uid: %w", err)
	}
	return &user, nil
}
