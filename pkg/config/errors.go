package config

import "errors"

var (
	// ErrInvalidYAML indicates the optional config file exists but failed to parse.
	ErrInvalidYAML = errors.New("invalid YAML syntax")

	// ErrMissingAPIKey indicates no LLM provider credential was found in
	// the environment; the caller may still run, but every LLM stage will
	// fail over to its deterministic fallback.
	ErrMissingAPIKey = errors.New("missing LLM API key")
)
