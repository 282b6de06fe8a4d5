package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Platform)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTAccessExpiry)
	assert.Equal(t, 1440*time.Hour, cfg.RefreshExpiry)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.IsDev())
}

func TestLoad_NonDevRequiresSecrets(t *testing.T) {
	t.Setenv("PLATFORM", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "short")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 characters")

	t.Setenv("JWT_SECRET", "a-very-long-and-random-secret-value-here")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLKA_KEY")

	t.Setenv("POLKA_KEY", "polka-api-key")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDev())
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "0")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_CustomTTLs(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_EXPIRY", "30m")
	t.Setenv("REFRESH_TOKEN_EXPIRY", "720h")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 720*time.Hour, cfg.RefreshExpiry)
}
