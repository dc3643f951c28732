package orchestrator

import (
	"lineforge/pkg/factory"
	"lineforge/pkg/metrics"
	"lineforge/pkg/stage"
)

// PreviewLen is the truncation length for input previews in the debug
// payload (spec §6: "input previews ≤ 200 chars").
const PreviewLen = 200

// InputPreview records how much of each request text was received
// without echoing it back in full.
type InputPreview struct {
	FactoryDescriptionPreview string `json:"factory_description_preview"`
	FactoryDescriptionLen     int    `json:"factory_description_len"`
	SituationTextPreview      string `json:"situation_text_preview"`
	SituationTextLen          int    `json:"situation_text_len"`
}

// PipelineDebugPayload is the full diagnostic record of one orchestrator
// run: every one of the ten stages, in fixed order, plus the computed
// overall status (spec §3 PipelineDebugPayload).
type PipelineDebugPayload struct {
	Inputs        InputPreview   `json:"inputs"`
	OverallStatus string         `json:"overall_status"`
	Stages        []stage.Record `json:"stages"`
}

// OnboardingMeta surfaces onboarding's outcome to the caller independent
// of the debug payload, so a client that ignores debug still knows
// whether it got the real factory (spec §3 OnboardingMeta).
type OnboardingMeta struct {
	UsedDefaultFactory  bool     `json:"used_default_factory"`
	OnboardingErrors    []string `json:"onboarding_errors"`
	InferredAssumptions []string `json:"inferred_assumptions"`
}

// Response is the full result of one orchestrator run, shaped to match
// the HTTP response body in spec §6 verbatim (Debug is a pointer so it
// can be omitted when instrumentation is disabled).
type Response struct {
	Factory  *factory.Config       `json:"factory"`
	Specs    []factory.Spec        `json:"specs"`
	Metrics  []metrics.Scenario    `json:"metrics"`
	Briefing string                `json:"briefing"`
	Meta     OnboardingMeta        `json:"meta"`
	Debug    *PipelineDebugPayload `json:"debug,omitempty"`
}

func truncatePreview(s string) string {
	if len(s) <= PreviewLen {
		return s
	}
	return s[:PreviewLen]
}
