package api

import (
	"lineforge/pkg/factory"
	"lineforge/pkg/metrics"
	"lineforge/pkg/orchestrator"
)

// SimulateRequest is the HTTP request body for POST /api/simulate. The
// fields are pointers so `binding:"required"` checks key presence, not
// zero-valueness — an empty string is a present, correctly-typed value
// that spec §8 requires to flow through to the pipeline, not a 4xx
// (spec §6 scopes 4xx to "missing fields, wrong types" only).
type SimulateRequest struct {
	FactoryDescription *string `json:"factory_description" binding:"required"`
	SituationText      *string `json:"situation_text" binding:"required"`
}

// OnboardRequest is the HTTP request body for POST /api/onboard.
type OnboardRequest struct {
	FactoryDescription *string `json:"factory_description" binding:"required"`
}

// SimulateResponse mirrors spec §6's response shape exactly: factory,
// specs, metrics, briefing, meta, and an optional debug payload.
type SimulateResponse struct {
	Factory  *factory.Config                    `json:"factory"`
	Specs    []factory.Spec                     `json:"specs"`
	Metrics  []metrics.Scenario                 `json:"metrics"`
	Briefing string                              `json:"briefing"`
	Meta     orchestrator.OnboardingMeta         `json:"meta"`
	Debug    *orchestrator.PipelineDebugPayload  `json:"debug,omitempty"`
}

// OnboardResponse is returned by POST /api/onboard.
type OnboardResponse struct {
	Factory *factory.Config             `json:"factory"`
	Meta    orchestrator.OnboardingMeta `json:"meta"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status             string `json:"status"`
	LLMConfigured      bool   `json:"llm_configured"`
	ToyFactoryLoadable bool   `json:"toy_factory_loadable"`
}

// ErrorResponse is the body of every non-2xx response this server emits.
type ErrorResponse struct {
	Error string `json:"error"`
}
