// Package config loads lineforge's ambient configuration: the LLM
// provider credential, CORS allow-list, and the optional stage-timeout
// override. Grounded on the teacher's pkg/config loader/envexpand split,
// trimmed to the handful of settings this pipeline actually has — there
// is no agent-chain or MCP-server registry to build here.
package config

import (
	"strings"
	"time"

	"lineforge/pkg/llm"
)

// Config is the resolved runtime configuration for all three binaries
// (cmd/lineforge, cmd/lineforge-server, cmd/lineforge-eval).
type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	StageTimeout time.Duration
	CORSOrigins  []string
	HTTPPort     string
	GinMode      string
}

// HasAPIKey reports whether an LLM credential was found. The binaries
// always wire an llm.HTTPGateway and use this only to warn, log or (with
// the CLI's --require-llm) refuse to run; without a key the gateway fails
// every call, so the fallbacks engage (spec §6: "if absent, every LLM
// stage records LLM_TRANSPORT and the fallbacks engage").
func (c *Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

const (
	defaultBaseURL      = "https://api.openai.com/v1"
	defaultModel        = "gpt-4o-mini"
	defaultHTTPPort     = "8080"
	defaultGinMode      = "release"
	defaultStageTimeout = llm.DefaultTimeout
)

func defaults() *Config {
	return &Config{
		BaseURL:      defaultBaseURL,
		Model:        defaultModel,
		StageTimeout: defaultStageTimeout,
		HTTPPort:     defaultHTTPPort,
		GinMode:      defaultGinMode,
	}
}
