package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vhforbes/boot-webserver/internal/domain"
	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

// ChirpRepository implements repository.ChirpRepository using PostgreSQL.
type ChirpRepository struct {
	db DB
}

// NewChirpRepository creates a new PostgreSQL-backed chirp repository.
func NewChirpRepository(db DB) *ChirpRepository {
	return &ChirpRepository{db: db}
}

// Create inserts a new chirp into the database.
func (r *ChirpRepository) Create(ctx context.Context, c *domain.Chirp) error {
	query := `
		INSERT INTO chirps (id, body, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, c.ID, c.Body, c.UserID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert chirp: %w", err)
	}

	return nil
}

// GetByID retrieves a chirp by its ID.
func (r *ChirpRepository) GetByID(ctx context.Context, id string) (*domain.Chirp, error) {
	query := `
		SELECT id, body, user_id, created_at, updated_at
		FROM chirps
		WHERE id = $1`

	var c domain.Chirp
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Body,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan chirp: %w", err)
	}

	return &c, nil
}

// List returns all chirps ordered by creation time, oldest first.
func (r *ChirpRepository) List(ctx context.Context) ([]domain.Chirp, error) {
	query := `
		SELECT id, body, user_id, created_at, updated_at
		FROM chirps
		ORDER BY created_at ASC`

	return r.queryChirps(ctx, query)
}

// ListByUserID returns all chirps by a single author, oldest first.
func (r *ChirpRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Chirp, error) {
	query := `
		SELECT id, body, user_id, created_at, updated_at
		FROM chirps
		WHERE user_id = $1
		ORDER BY created_at ASC`

	return r.queryChirps(ctx, query, userID)
}

// Delete removes a chirp by ID.
func (r *ChirpRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM chirps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete chirp: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("chirp", id)
	}

	return nil
}

func (r *ChirpRepository) queryChirps(ctx context.Context, query string, args ...any) ([]domain.Chirp, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chirps: %w", err)
	}
	defer rows.Close()

	chirps := []domain.Chirp{}
	for rows.Next() {
		var c domain.Chirp
		if err := rows.Scan(&c.ID, &c.Body, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan chirp: %w", err)
		}
		chirps = append(chirps, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chirps: %w", err)
	}

	return chirps, nil
}
