package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	for _, k := range []string{"OPENAI_API_KEY", "LINEFORGE_BASE_URL", "LINEFORGE_MODEL", "HTTP_PORT", "GIN_MODE", "BACKEND_CORS_ORIGINS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaultsWhenNothingSet(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, defaultModel, cfg.Model)
	assert.Equal(t, defaultHTTPPort, cfg.HTTPPort)
	assert.Equal(t, defaultGinMode, cfg.GinMode)
	assert.Equal(t, defaultStageTimeout, cfg.StageTimeout)
	assert.False(t, cfg.HasAPIKey())
	assert.Nil(t, cfg.CORSOrigins)
}

func TestLoadEnvironmentVariablesOverrideDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LINEFORGE_MODEL", "gpt-custom")
	t.Setenv("LINEFORGE_BASE_URL", "https://example.com/v1")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("GIN_MODE", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), "")

	require.NoError(t, err)
	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "gpt-custom", cfg.Model)
	assert.Equal(t, "https://example.com/v1", cfg.BaseURL)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "debug", cfg.GinMode)
}

func TestLoadCORSOriginsSplitsAndTrims(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("BACKEND_CORS_ORIGINS", "http://localhost:3000, https://app.example.com ,,http://x.test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"), "")

	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com", "http://x.test"}, cfg.CORSOrigins)
}

func TestLoadMissingYAMLFileIsNotAnError(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load("", filepath.Join(t.TempDir(), "nonexistent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, defaultModel, cfg.Model)
}

func TestLoadYAMLOverridesAppliedOnTopOfEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("LINEFORGE_MODEL", "gpt-env")

	yamlPath := filepath.Join(t.TempDir(), "lineforge.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("model: gpt-yaml\nstage_timeout_seconds: 45\n"), 0o644))

	cfg, err := Load("", yamlPath)

	require.NoError(t, err)
	assert.Equal(t, "gpt-yaml", cfg.Model)
	assert.Equal(t, 45*time.Second, cfg.StageTimeout)
}

func TestLoadYAMLExpandsEnvVars(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("CUSTOM_BASE_URL", "https://custom.example.com/v1")

	yamlPath := filepath.Join(t.TempDir(), "lineforge.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("base_url: ${CUSTOM_BASE_URL}\n"), 0o644))

	cfg, err := Load("", yamlPath)

	require.NoError(t, err)
	assert.Equal(t, "https://custom.example.com/v1", cfg.BaseURL)
}

func TestLoadMalformedYAMLReturnsErrInvalidYAML(t *testing.T) {
	clearConfigEnv(t)

	yamlPath := filepath.Join(t.TempDir(), "lineforge.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("model: [unterminated\n"), 0o644))

	_, err := Load("", yamlPath)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidYAML)
}

func TestLoadEnvFilePopulatesProcessEnv(t *testing.T) {
	clearConfigEnv(t)

	envPath := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("OPENAI_API_KEY=sk-from-dotenv\n"), 0o644))

	cfg, err := Load(envPath, "")

	require.NoError(t, err)
	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "sk-from-dotenv", cfg.APIKey)
}

func TestHasAPIKeyFalseForWhitespaceOnly(t *testing.T) {
	cfg := &Config{APIKey: "   "}
	assert.False(t, cfg.HasAPIKey())
}
