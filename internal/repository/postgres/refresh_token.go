package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vhforbes/boot-webserver/internal/domain"
	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

// RefreshTokenRepository implements repository.RefreshTokenRepository using
// PostgreSQL.
type RefreshTokenRepository struct {
	db DB
}

// NewRefreshTokenRepository creates a new PostgreSQL-backed refresh token
// repository.
func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create stores a refresh token for the given user.
func (r *RefreshTokenRepository) Create(ctx context.Context, token, userID string, expiresAt time.Time) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO refresh_tokens (token, user_id, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, token, userID, expiresAt, now, now)
	if err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}

	return nil
}

// GetByToken looks up a refresh token by its value.
func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	query := `
		SELECT token, user_id, expires_at, created_at, updated_at, revoked_at
		FROM refresh_tokens
		WHERE token = $1`

	var rt domain.RefreshToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&rt.Token,
		&rt.UserID,
		&rt.ExpiresAt,
		&rt.CreatedAt,
		&rt.UpdatedAt,
		&rt.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan refresh token: %w", err)
	}

	return &rt, nil
}

// Revoke marks a refresh token as revoked at the given time. The token row
// stays in place so later lookups can distinguish revoked from unknown, and
// re-revoking keeps the original revocation timestamp.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string, when time.Time) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = COALESCE(revoked_at, $1), updated_at = $1
		WHERE token = $2`

	ct, err := r.db.Exec(ctx, query, when, token)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
