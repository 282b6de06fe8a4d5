package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/vhforbes/boot-webserver/internal/auth"
	"github.com/vhforbes/boot-webserver/internal/domain"
	"github.com/vhforbes/boot-webserver/internal/repository"
	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

// SessionService orchestrates login, token refresh, revocation, and caller
// authentication for the HTTP layer.
type SessionService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.RefreshTokenRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	jwtSecret string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
	logger *slog.Logger,
) *SessionService {
	return &SessionService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Login authenticates a user by email and password and issues an access token
// plus a freshly stored refresh token.
//
// An unregistered email maps to a bad-request error; a wrong password maps
// to unauthorized.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error) {
	if email == "" {
		return nil, nil, apperrors.BadRequest("email is required")
	}
	if password == "" {
		return nil, nil, apperrors.BadRequest("password is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.BadRequest("incorrect email or password")
		}
		return nil, nil, fmt.Errorf("look up user by email: %w", err)
	}

	match, err := auth.CheckPassword(password, user.HashedPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return nil, nil, apperrors.Unauthorized("incorrect email or password")
	}

	accessToken, err := auth.MakeJWT(user.ID, s.accessTTL, s.jwtSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, err := auth.MakeRefreshToken()
	if err != nil {
		return nil, nil, fmt.Errorf("issue refresh token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.refreshTTL)
	if err := s.tokenRepo.Create(ctx, refreshToken, user.ID, expiresAt); err != nil {
		return nil, nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh validates a refresh token and mints a new access token for its
// user. The refresh token itself is not rotated; it stays valid until it
// expires or is revoked.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	accessToken, err := auth.MakeJWT(userID, s.accessTTL, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}

	s.logger.InfoContext(ctx, "access token refreshed",
		slog.String("user_id", userID),
	)

	return accessToken, nil
}

// Revoke marks a refresh token as revoked. Revocation is permanent; a
// revoked token never authenticates again. Revoking an unknown token fails
// unauthorized, while revoking an already-revoked token succeeds.
func (s *SessionService) Revoke(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.BadRequest("refresh token is required")
	}

	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.Unauthorized("invalid refresh token")
		}
		return fmt.Errorf("look up refresh token: %w", err)
	}

	if err := s.tokenRepo.Revoke(ctx, refreshToken, time.Now().UTC()); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	s.logger.InfoContext(ctx, "refresh token revoked",
		slog.String("user_id", stored.UserID),
	)

	return nil
}

// Authenticate resolves the calling user from the Authorization header.
// It fails unauthorized if the header is missing, not Bearer-prefixed, or
// the token does not verify.
func (s *SessionService) Authenticate(headers http.Header) (string, error) {
	token, err := auth.GetBearerToken(headers)
	if err != nil {
		return "", err
	}

	return auth.ValidateJWT(token, s.jwtSecret)
}

// validateRefreshToken checks existence, revocation, and expiry. Either a
// set revocation time or a passed expiry alone invalidates the token.
func (s *SessionService) validateRefreshToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperrors.BadRequest("refresh token is required")
	}

	stored, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.Unauthorized("invalid refresh token")
		}
		return "", fmt.Errorf("look up refresh token: %w", err)
	}

	now := time.Now().UTC()
	if stored.RevokedAt != nil && !stored.RevokedAt.After(now) {
		return "", apperrors.Unauthorized("refresh token has been revoked")
	}
	if !now.Before(stored.ExpiresAt) {
		return "", apperrors.Unauthorized("refresh token has expired")
	}

	return stored.UserID, nil
}
