package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniel/jobscout/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMergedConfig_FlagOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"user_id": "file-user",
		"database_url": "postgres://file/db",
		"api_key": "file-key",
		"match_threshold": 0.6
	}`)

	cfg, err := loadMergedConfig(path, func(cfg *config.Config) {
		cfg.UserID = "flag-user"
	})
	require.NoError(t, err)

	assert.Equal(t, "flag-user", cfg.UserID)
	assert.Equal(t, "postgres://file/db", cfg.DatabaseURL)
	assert.Equal(t, 0.6, cfg.MatchThreshold)
}

func TestLoadMergedConfig_EnvFillsGaps(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("JOBSCOUT_USER_ID", "env-user")

	cfg, err := loadMergedConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "env-user", cfg.UserID)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, "env-key", cfg.APIKey)
}

func TestLoadMergedConfig_MissingRequiredValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JOBSCOUT_USER_ID", "")

	_, err := loadMergedConfig("", nil)
	assert.Error(t, err)
}

func TestLoadMergedConfig_BadFile(t *testing.T) {
	_, err := loadMergedConfig(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}
