package decision

import (
	"context"
	"fmt"
	"strings"

	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
)

// intentOutput is the raw LLM shape for D1.
type intentOutput struct {
	ScenarioType   string `json:"scenario_type"`
	RushJobID      string `json:"rush_job_id"`
	SlowdownFactor int    `json:"slowdown_factor"`
	Constraints    string `json:"constraints"`
}

// IntentResult is D1's validated output.
type IntentResult struct {
	Spec        factory.Spec
	Constraints string
}

// RunD1 classifies the operator's situation text into a scenario spec.
// It never propagates a gateway error to the caller: any transport/parse
// failure, or any spec that fails validation against cfg, coerces to plain
// BASELINE, and the stage still completes with the preserved constraint
// string (spec §4.11).
func RunD1(ctx context.Context, deps Deps, cfg *factory.Config, situationText string) (IntentResult, stage.Record) {
	model := deps.AgentModel
	rec := stage.Record{
		ID:         "D1",
		Name:       "Intent classification",
		Kind:       stage.KindDecision,
		AgentModel: &model,
	}

	prompt := buildIntentPrompt(cfg, situationText)

	var out intentOutput
	err := deps.Gateway.CallJSON(ctx, prompt, &out, deps.timeout())
	if err != nil {
		// The gateway failed outright (as opposed to returning an invalid
		// spec) — the stage is FAILED, but the spec still defaults to
		// BASELINE so the decision pipeline keeps going (spec §4.11, §7:
		// "the stage never propagates an exception").
		rec.Status = stage.StatusFailed
		rec.Errors = []string{stage.TruncateError(fmt.Sprintf("gateway error, coerced to BASELINE: %v", err))}
		result := IntentResult{Spec: factory.Spec{Type: factory.ScenarioBaseline}, Constraints: ""}
		rec.Summary = summarizeIntent(result)
		return result, rec
	}

	candidate := factory.Spec{
		Type:           factory.ScenarioType(out.ScenarioType),
		RushJobID:      out.RushJobID,
		SlowdownFactor: out.SlowdownFactor,
	}
	normalized, ok := factory.NormalizeSpec(cfg, candidate)
	result := IntentResult{Spec: normalized, Constraints: out.Constraints}

	rec.Status = stage.StatusSuccess
	if !ok {
		rec.Errors = []string{stage.TruncateError(fmt.Sprintf(
			"invalid scenario spec %+v coerced to BASELINE", candidate))}
	}
	rec.Summary = summarizeIntent(result)
	return result, rec
}

func summarizeIntent(r IntentResult) map[string]any {
	summary := map[string]any{
		"scenario_type":       string(r.Spec.Type),
		"has_constraint_text": strings.TrimSpace(r.Constraints) != "",
	}
	if r.Spec.Type == factory.ScenarioRushArrives {
		summary["rush_job_id"] = r.Spec.RushJobID
	}
	return summary
}

func buildIntentPrompt(cfg *factory.Config, situationText string) string {
	var b strings.Builder
	b.WriteString("Classify the operator's situation into one of BASELINE, RUSH_ARRIVES, M2_SLOWDOWN.\n")
	b.WriteString("Return JSON: {\"scenario_type\",\"rush_job_id\",\"slowdown_factor\",\"constraints\"}.\n")
	b.WriteString(fmt.Sprintf("Valid job ids: %v\n", cfg.JobIDs()))
	b.WriteString("Situation:\n")
	b.WriteString(situationText)
	return b.String()
}
