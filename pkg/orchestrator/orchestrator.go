// Package orchestrator sequences the onboarding and decision pipelines,
// applies the fallback policy, and assembles the debug payload described
// in spec §4.16. Grounded on the teacher's pkg/agent/orchestrator package,
// simplified from concurrent sub-agent dispatch to a single-threaded
// sequential walk — the spec mandates that the ten stages never fan out.
package orchestrator

import (
	"context"
	"strings"
	"time"

	"lineforge/pkg/decision"
	"lineforge/pkg/factory"
	"lineforge/pkg/llm"
	"lineforge/pkg/metrics"
	"lineforge/pkg/onboarding"
	"lineforge/pkg/stage"
	"lineforge/pkg/toyfactory"
)

// Orchestrator holds the dependencies shared by both pipelines.
type Orchestrator struct {
	Gateway      llm.Gateway
	AgentModel   string
	StageTimeout time.Duration
}

func (o *Orchestrator) onboardingDeps() onboarding.Deps {
	return onboarding.Deps{Gateway: o.Gateway, AgentModel: o.AgentModel, StageTimeout: o.StageTimeout}
}

func (o *Orchestrator) decisionDeps() decision.Deps {
	return decision.Deps{Gateway: o.Gateway, AgentModel: o.AgentModel, StageTimeout: o.StageTimeout}
}

// Run threads factoryDescription and situationText through all ten stages
// in fixed order and returns a complete, schema-valid Response regardless
// of how many stages degraded along the way (spec §4.16, §7).
//
// If ctx is already cancelled when Run is called, none of the ten stages
// are attempted: every one is recorded SKIPPED and overall_status is
// FAILED. A cancellation that arrives mid-run is surfaced the same way an
// ordinary gateway failure is — each stage's own documented fallback
// (coerce to BASELINE, reuse the prior stage's specs, emit the
// deterministic briefing template) already absorbs a cancelled model call,
// since ctx is threaded into every Gateway.CallJSON.
func (o *Orchestrator) Run(ctx context.Context, factoryDescription, situationText string) Response {
	if ctx.Err() != nil {
		return o.cancelledResponse(factoryDescription, situationText)
	}

	onboardResult := onboarding.Run(ctx, o.onboardingDeps(), factoryDescription)
	cfg := onboardResult.Factory

	decisionResult := decision.Run(ctx, o.decisionDeps(), cfg, situationText, onboardResult.UsedDefaultFactory)

	records := append(append([]stage.Record{}, onboardResult.Records...), decisionResult.Records...)

	specs := make([]factory.Spec, 0, len(decisionResult.Metrics))
	scenarioMetrics := make([]metrics.Scenario, 0, len(decisionResult.Metrics))
	for _, m := range decisionResult.Metrics {
		specs = append(specs, m.Spec)
		scenarioMetrics = append(scenarioMetrics, m.Metrics)
	}

	overall := computeOverallStatus(records, decisionResult.Briefing)

	return Response{
		Factory:  cfg,
		Specs:    specs,
		Metrics:  scenarioMetrics,
		Briefing: decisionResult.Briefing,
		Meta:     BuildOnboardingMeta(onboardResult),
		Debug: &PipelineDebugPayload{
			Inputs:        buildInputPreview(factoryDescription, situationText),
			OverallStatus: overall,
			Stages:        records,
		},
	}
}

// allStages is the fixed stage order the debug payload must always
// present, even when every stage was skipped before running (spec §4.16
// invariant: "exactly ten stage records in the fixed order").
var allStages = []struct {
	ID, Name string
	Kind     stage.Kind
}{
	{"O0", "Explicit ID extraction", stage.KindOnboarding},
	{"O1", "Coarse structure extraction", stage.KindOnboarding},
	{"O2", "Fine extraction", stage.KindOnboarding},
	{"O3", "Normalize & validate", stage.KindOnboarding},
	{"O4", "Coverage assessment", stage.KindOnboarding},
	{"D1", "Intent classification", stage.KindDecision},
	{"D2", "Scenario expansion", stage.KindDecision},
	{"D3", "Deterministic simulation", stage.KindDecision},
	{"D4", "Metrics computation", stage.KindDecision},
	{"D5", "Briefing", stage.KindDecision},
}

func (o *Orchestrator) cancelledResponse(factoryDescription, situationText string) Response {
	records := make([]stage.Record, 0, len(allStages))
	for _, s := range allStages {
		rec := stage.Skipped(s.ID, s.Name, s.Kind)
		rec.Errors = []string{"CANCELLED: request cancelled before the pipeline started"}
		records = append(records, rec)
	}
	toy := toyfactory.Factory()
	return Response{
		Factory:  toy,
		Specs:    nil,
		Metrics:  nil,
		Briefing: "",
		Meta: OnboardingMeta{
			UsedDefaultFactory: true,
			OnboardingErrors:   []string{"CANCELLED"},
		},
		Debug: &PipelineDebugPayload{
			Inputs:        buildInputPreview(factoryDescription, situationText),
			OverallStatus: "FAILED",
			Stages:        records,
		},
	}
}

func buildInputPreview(factoryDescription, situationText string) InputPreview {
	return InputPreview{
		FactoryDescriptionPreview: truncatePreview(factoryDescription),
		FactoryDescriptionLen:     len(factoryDescription),
		SituationTextPreview:      truncatePreview(situationText),
		SituationTextLen:          len(situationText),
	}
}

// BuildOnboardingMeta assembles the caller-facing OnboardingMeta from an
// onboarding.Result, shared by the full Run and by /api/onboard (which
// runs onboarding alone).
func BuildOnboardingMeta(result onboarding.Result) OnboardingMeta {
	return OnboardingMeta{
		UsedDefaultFactory:  result.UsedDefaultFactory,
		OnboardingErrors:    result.OnboardingErrors,
		InferredAssumptions: inferredAssumptions(result.Records),
	}
}

// inferredAssumptions surfaces O3's normalization warnings (coerced
// durations, dropped duplicate ids, truncated caps) as the caller-facing
// assumption list spec §3 describes for OnboardingMeta.
func inferredAssumptions(records []stage.Record) []string {
	for _, r := range records {
		if r.ID != "O3" || r.Summary == nil {
			continue
		}
		if warnings, ok := r.Summary["warnings"].([]string); ok {
			return warnings
		}
	}
	return nil
}

// computeOverallStatus implements spec §4.16's three-way rule.
func computeOverallStatus(records []stage.Record, briefing string) string {
	allSuccess := true
	onboardingDegraded := false
	decisionSkipped := false

	for _, r := range records {
		if r.Status != stage.StatusSuccess {
			allSuccess = false
		}
		if r.Kind == stage.KindOnboarding && r.Status != stage.StatusSuccess {
			onboardingDegraded = true
		}
		if r.Kind == stage.KindDecision && r.Status == stage.StatusSkipped {
			decisionSkipped = true
		}
	}

	if allSuccess {
		return "SUCCESS"
	}
	if onboardingDegraded && !decisionSkipped && strings.TrimSpace(briefing) != "" {
		return "PARTIAL"
	}
	return "FAILED"
}
