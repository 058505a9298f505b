package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT: \"9000\"\nSTORAGE_DRIVER: sqlite\nRATE_LIMIT_MAX: 3\n"), 0o600))

	t.Setenv("RATE_LIMIT_MAX", "7")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("JWT_SECRET", " s3cret ")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, 7, cfg.RateLimitMax)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "recipe-chat:realtime", cfg.RedisChannel)
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "soon")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidatorReportsJSONNames(t *testing.T) {
	InitValidator()
	type body struct {
		RecipeID uint `json:"recipeId" validate:"required"`
	}
	err := Validate.Struct(body{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipeId")
}
