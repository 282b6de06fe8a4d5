package repository

import (
	"context"
	"time"

	"github.com/vhforbes/boot-webserver/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
// Lookups that match no row return pkg/errors.ErrNotFound, never a storage
// error.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's email and password hash.
	Update(ctx context.Context, user *domain.User) error

	// UpgradeToChirpyRed marks the user as a Chirpy Red member.
	UpgradeToChirpyRed(ctx context.Context, id string) error

	// DeleteAll removes every user. Chirps and refresh tokens cascade.
	DeleteAll(ctx context.Context) error
}

// ChirpRepository defines the interface for chirp persistence operations.
type ChirpRepository interface {
	// Create inserts a new chirp into the store.
	Create(ctx context.Context, chirp *domain.Chirp) error

	// GetByID retrieves a chirp by its unique identifier.
	GetByID(ctx context.Context, id string) (*domain.Chirp, error)

	// List returns all chirps ordered by creation time ascending.
	List(ctx context.Context) ([]domain.Chirp, error)

	// ListByUserID returns the given author's chirps, oldest first.
	ListByUserID(ctx context.Context, userID string) ([]domain.Chirp, error)

	// Delete removes a chirp from the store by its identifier.
	Delete(ctx context.Context, id string) error
}

// RefreshTokenRepository defines the interface for refresh token persistence.
// The token string itself is the key; validity checks live in the service
// layer, this interface only stores and retrieves state.
type RefreshTokenRepository interface {
	// Create stores a new refresh token row with a nil revoked_at.
	Create(ctx context.Context, token, userID string, expiresAt time.Time) error

	// GetByToken retrieves a refresh token row by its token string.
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)

	// Revoke sets revoked_at for the given token. Revoking an
	// already-revoked token leaves the original timestamp in place.
	Revoke(ctx context.Context, token string, when time.Time) error
}
