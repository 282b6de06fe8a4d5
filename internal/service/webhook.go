package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vhforbes/boot-webserver/internal/event"
	"github.com/vhforbes/boot-webserver/internal/repository"
	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
)

// EventUserUpgraded is the only Polka webhook event this service acts on.
const EventUserUpgraded = "user.upgraded"

// WebhookService processes payment-provider webhook events.
type WebhookService struct {
	userRepo repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewWebhookService creates a new webhook service.
func NewWebhookService(
	userRepo repository.UserRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *WebhookService {
	return &WebhookService{
		userRepo: userRepo,
		producer: producer,
		logger:   logger,
	}
}

// ProcessEvent handles a single webhook event. Events other than
// user.upgraded are acknowledged without any effect. An upgrade for an
// unknown user fails not-found.
func (s *WebhookService) ProcessEvent(ctx context.Context, eventType, userID string) error {
	if eventType != EventUserUpgraded {
		s.logger.DebugContext(ctx, "ignoring webhook event",
			slog.String("event", eventType),
		)
		return nil
	}

	if userID == "" {
		return apperrors.BadRequest("user id is required")
	}

	if err := s.userRepo.UpgradeToChirpyRed(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("user", userID)
		}
		return fmt.Errorf("upgrade user: %w", err)
	}

	// Publish upgrade event (non-blocking on failure).
	if err := s.producer.PublishUserUpgraded(ctx, userID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.upgraded event",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user upgraded to chirpy red",
		slog.String("user_id", userID),
	)

	return nil
}
