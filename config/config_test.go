package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hallpoint/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hallpoint?sslmode=disable")
	t.Setenv("JWT_ACCESS_SECRET", "segredo")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.True(t, cfg.TokenRevocationEnabled)
	assert.Equal(t, []string{"https://hall-point.web.app", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Fail_MissingSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hallpoint?sslmode=disable")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hallpoint?sslmode=disable")
	t.Setenv("JWT_ACCESS_SECRET", "segredo")
	t.Setenv("APP_ENV", "production")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
