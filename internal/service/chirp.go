package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vhforbes/boot-webserver/internal/domain"
	"github.com/vhforbes/boot-webserver/internal/repository"
	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

// maxChirpLength is the maximum length of a chirp body after cleaning.
const maxChirpLength = 120

// forbiddenWords are replaced with asterisks in chirp bodies. Matching is
// case-insensitive and applies per whitespace-separated word.
var forbiddenWords = []string{"kerfuffle", "sharbert", "fornax"}

// ChirpService implements the business logic for chirp operations.
type ChirpService struct {
	chirpRepo repository.ChirpRepository
	logger    *slog.Logger
}

// NewChirpService creates a new chirp service.
func NewChirpService(chirpRepo repository.ChirpRepository, logger *slog.Logger) *ChirpService {
	return &ChirpService{
		chirpRepo: chirpRepo,
		logger:    logger,
	}
}

// CreateChirp cleans the body, enforces the length limit, and stores the
// chirp for the given author.
func (s *ChirpService) CreateChirp(ctx context.Context, userID, body string) (*domain.Chirp, error) {
	if body == "" {
		return nil, apperrors.BadRequest("body is required")
	}

	cleaned := cleanChirpBody(body)
	if len(cleaned) > maxChirpLength {
		return nil, apperrors.BadRequest("chirp is too long")
	}

	now := time.Now().UTC()
	chirp := &domain.Chirp{
		ID:        uuid.New().String(),
		Body:      cleaned,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.chirpRepo.Create(ctx, chirp); err != nil {
		return nil, fmt.Errorf("create chirp: %w", err)
	}

	s.logger.InfoContext(ctx, "chirp created",
		slog.String("chirp_id", chirp.ID),
		slog.String("user_id", userID),
	)

	return chirp, nil
}

// GetChirp retrieves a single chirp by ID.
func (s *ChirpService) GetChirp(ctx context.Context, chirpID string) (*domain.Chirp, error) {
	chirp, err := s.chirpRepo.GetByID(ctx, chirpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("chirp", chirpID)
		}
		return nil, fmt.Errorf("get chirp: %w", err)
	}
	return chirp, nil
}

// ListChirps returns chirps ordered oldest first, optionally filtered by
// author.
func (s *ChirpService) ListChirps(ctx context.Context, authorID string) ([]domain.Chirp, error) {
	if authorID != "" {
		chirps, err := s.chirpRepo.ListByUserID(ctx, authorID)
		if err != nil {
			return nil, fmt.Errorf("list chirps by author: %w", err)
		}
		return chirps, nil
	}

	chirps, err := s.chirpRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chirps: %w", err)
	}
	return chirps, nil
}

// DeleteChirp removes a chirp. Only its author may delete it; any other
// authenticated caller gets a forbidden error.
func (s *ChirpService) DeleteChirp(ctx context.Context, userID, chirpID string) error {
	chirp, err := s.chirpRepo.GetByID(ctx, chirpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("chirp", chirpID)
		}
		return fmt.Errorf("get chirp: %w", err)
	}

	if chirp.UserID != userID {
		return apperrors.Forbidden("you can only delete your own chirps")
	}

	if err := s.chirpRepo.Delete(ctx, chirpID); err != nil {
		return fmt.Errorf("delete chirp: %w", err)
	}

	s.logger.InfoContext(ctx, "chirp deleted",
		slog.String("chirp_id", chirpID),
		slog.String("user_id", userID),
	)

	return nil
}

// cleanChirpBody replaces each word containing a forbidden substring with
// four asterisks, preserving the rest of the text.
func cleanChirpBody(body string) string {
	words := strings.Split(body, " ")

	for i, word := range words {
		lower := strings.ToLower(word)
		for _, forbidden := range forbiddenWords {
			if strings.Contains(lower, forbidden) {
				words[i] = "****"
				break
			}
		}
	}

	return strings.Join(words, " ")
}
