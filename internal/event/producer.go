package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vhforbes/boot-webserver/internal/domain"
	pkgkafka "github.com/vhforbes/boot-webserver/pkg/kafka"
)

// Kafka topic constants for chirpy domain events.
const (
	TopicUserRegistered = "chirpy.user.registered"
	TopicUserUpgraded   = "chirpy.user.upgraded"
)

// Aggregate type constant.
const AggregateTypeUser = "user"

// Source identifier for events originating from this service.
const SourceChirpy = "chirpy"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserUpgradedData is the payload for a user.upgraded event.
type UserUpgradedData struct {
	UserID string `json:"user_id"`
}

// Producer publishes chirpy domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:    user.ID,
		Email: user.Email,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, user.ID, AggregateTypeUser, SourceChirpy, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}

// PublishUserUpgraded publishes a user.upgraded event.
func (p *Producer) PublishUserUpgraded(ctx context.Context, userID string) error {
	data := UserUpgradedData{UserID: userID}

	event, err := pkgkafka.NewEvent(TopicUserUpgraded, userID, AggregateTypeUser, SourceChirpy, data)
	if err != nil {
		return fmt.Errorf("create user.upgraded event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserUpgraded, event); err != nil {
		return fmt.Errorf("publish user.upgraded event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.upgraded event",
		slog.String("user_id", userID),
	)

	return nil
}
