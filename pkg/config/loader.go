package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// yamlOverrides is the shape of the optional lineforge.yaml file. Every
// field is optional; anything unset keeps the environment-derived or
// built-in default.
type yamlOverrides struct {
	Model               string `yaml:"model"`
	BaseURL             string `yaml:"base_url"`
	StageTimeoutSeconds int    `yaml:"stage_timeout_seconds"`
}

// Load resolves configuration from, in increasing precedence: built-in
// defaults, an optional .env file at envPath, process environment
// variables, and an optional YAML file at yamlPath. A missing .env or
// YAML file is not an error — both are supplements, not requirements
// (spec §6: environment variables alone are sufficient to run).
func Load(envPath, yamlPath string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("no .env file loaded", "path", envPath, "error", err)
	}

	cfg := defaults()
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("LINEFORGE_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("LINEFORGE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		cfg.HTTPPort = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}
	cfg.CORSOrigins = parseCORSOrigins(os.Getenv("BACKEND_CORS_ORIGINS"))

	if yamlPath != "" {
		if err := applyYAMLOverrides(cfg, yamlPath); err != nil {
			return nil, err
		}
	}

	if !cfg.HasAPIKey() {
		slog.Warn("no LLM API key configured; LLM-backed stages will fall back",
			"env_var", "OPENAI_API_KEY")
	}

	return cfg, nil
}

func applyYAMLOverrides(cfg *Config, yamlPath string) error {
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", yamlPath, err)
	}

	data = ExpandEnv(data)

	var overrides yamlOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidYAML, yamlPath, err)
	}

	if overrides.Model != "" {
		cfg.Model = overrides.Model
	}
	if overrides.BaseURL != "" {
		cfg.BaseURL = overrides.BaseURL
	}
	if overrides.StageTimeoutSeconds > 0 {
		cfg.StageTimeout = time.Duration(overrides.StageTimeoutSeconds) * time.Second
	}
	return nil
}

func parseCORSOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
