package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vhforbes/boot-webserver/internal/auth"
	"github.com/vhforbes/boot-webserver/internal/domain"
	"github.com/vhforbes/boot-webserver/internal/event"
	pkgkafka "github.com/vhforbes/boot-webserver/pkg/kafka"
)

const testJWTSecret = "test-secret-key-for-testing-only-32ch"

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) UpgradeToChirpyRed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock Chirp Repository ---

type mockChirpRepository struct {
	mock.Mock
}

func (m *mockChirpRepository) Create(ctx context.Context, chirp *domain.Chirp) error {
	args := m.Called(ctx, chirp)
	return args.Error(0)
}

func (m *mockChirpRepository) GetByID(ctx context.Context, id string) (*domain.Chirp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Chirp), args.Error(1)
}

func (m *mockChirpRepository) List(ctx context.Context) ([]domain.Chirp, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Chirp), args.Error(1)
}

func (m *mockChirpRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Chirp, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Chirp), args.Error(1)
}

func (m *mockChirpRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock Refresh Token Repository ---

type mockRefreshTokenRepository struct {
	mock.Mock
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token, userID string, expiresAt time.Time) error {
	args := m.Called(ctx, token, userID, expiresAt)
	return args.Error(0)
}

func (m *mockRefreshTokenRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string, when time.Time) error {
	args := m.Called(ctx, token, when)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEventProducer() *event.Producer {
	logger := newTestLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	return event.NewProducer(kafkaProducer, logger)
}

func newTestSessionService(
	userRepo *mockUserRepository,
	tokenRepo *mockRefreshTokenRepository,
) *SessionService {
	return NewSessionService(userRepo, tokenRepo, testJWTSecret, time.Hour, 60*24*time.Hour, newTestLogger())
}

// hashForTest produces a real hash so login tests exercise verification.
func hashForTest(t *testing.T, password string) string {
	t.Helper()
	h, err := auth.HashPassword(password)
	require.NoError(t, err)
	return h
}
