package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vhforbes/boot-webserver/internal/auth"
	"github.com/vhforbes/boot-webserver/internal/domain"
	"github.com/vhforbes/boot-webserver/internal/event"
	"github.com/vhforbes/boot-webserver/internal/repository"
	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// UserService implements the business logic for user account operations.
type UserService struct {
	userRepo repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		producer: producer,
		logger:   logger,
	}
}

// CreateUser registers a new user account with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.BadRequest("email is required")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.New().String(),
		Email:          email,
		HashedPassword: hashedPassword,
		IsChirpyRed:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user created",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// UpdateUser changes the authenticated user's email and password.
func (s *UserService) UpdateUser(ctx context.Context, userID, email, password string) (*domain.User, error) {
	if email == "" {
		return nil, apperrors.BadRequest("email is required")
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user", userID)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user.Email = email
	user.HashedPassword = hashedPassword

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "user updated",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// DeleteAllUsers removes every user account. Only the dev-environment admin
// reset endpoint calls this.
func (s *UserService) DeleteAllUsers(ctx context.Context) error {
	if err := s.userRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all users: %w", err)
	}

	s.logger.InfoContext(ctx, "all users deleted")
	return nil
}

// validatePassword enforces password requirements.
func validatePassword(password string) error {
	if password == "" {
		return apperrors.BadRequest("password is required")
	}
	if len(password) < minPasswordLength {
		return apperrors.BadRequest(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}
