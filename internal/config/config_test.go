package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv marks keys for restoration and unsets them for the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_ReadsAPIKeyFromEnvFile(t *testing.T) {
	clearEnv(t, "API_KEY", "PORT", "GEMINI_PREFERRED_MODELS")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_KEY=  secret-key  \n"), 0o600))
	t.Setenv("ENV_FILE", path)

	cfg := Load()

	assert.Equal(t, "secret-key", cfg.APIKey)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DefaultPreferredModels, cfg.PreferredModels)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ProcessEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("API_KEY=from-file\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("API_KEY", "from-env")

	cfg := Load()
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoad_MissingEnvFileIsNotFatal(t *testing.T) {
	clearEnv(t, "API_KEY")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()
	assert.Empty(t, cfg.APIKey)
	assert.Error(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "none.env"))
	t.Setenv("API_KEY", "k")
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_PREFERRED_MODELS", " gemini-pro , ,gemini-flash ")
	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	t.Setenv("STATS_WINDOW", "90s")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"gemini-pro", "gemini-flash"}, cfg.PreferredModels)
	assert.Equal(t, int64(52428800), cfg.MaxUploadBytes)
	assert.Equal(t, 90*time.Second, cfg.StatsWindow)
}
