package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("SERVER_PORT", "9999")
		t.Setenv("DB_MAX_OPEN_CONNS", "50")
		t.Setenv("TEAM_MAX_SIZE", "6")

		cfg, err := LoadConfig("does-not-exist.yaml")

		require.NoError(t, err)
		assert.Equal(t, "9999", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 6, cfg.Team.MaxSize)
		assert.Equal(t, "test-secret", cfg.JWT.Secret)
	})

	t.Run("untagged defaults survive when env is unset", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")

		cfg, err := LoadConfig("does-not-exist.yaml")

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "teamup:notifications", cfg.Team.NotificationChannelNS)
	})

	t.Run("malformed numeric env value fails loading", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("REDIS_DB", "not-a-number")

		_, err := LoadConfig("does-not-exist.yaml")

		assert.Error(t, err)
	})

	t.Run("missing JWT secret is rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig("does-not-exist.yaml")

		assert.Error(t, err)
	})

	t.Run("team size outside the allowed range is rejected", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("TEAM_MAX_SIZE", "11")

		_, err := LoadConfig("does-not-exist.yaml")

		assert.Error(t, err)
	})
}
