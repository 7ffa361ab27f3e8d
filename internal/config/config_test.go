package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.Postgres.QueryTimeout())
	assert.Equal(t, time.Minute, cfg.RateLimit.Window())
}

func TestLoad_RequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_LegacySecretVariable(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("JWT_SECRET", "legacy")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.Auth.JWTSecret)
}

func TestLoad_RejectsBcryptCostOutOfRange(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s")
	t.Setenv("AUTH_BCRYPT_COST", "2")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	assert.Error(t, err)
}

func TestAppConfig_Addr(t *testing.T) {
	cfg := AppConfig{Host: "127.0.0.1", Port: "3000"}
	assert.Equal(t, "127.0.0.1:3000", cfg.Addr())
	assert.Zero(t, AppConfig{}.RequestTimeout())
}
