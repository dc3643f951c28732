package decision

import (
	"context"
	"fmt"
	"strings"

	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
)

// MaxFutures is the hard cap on candidate specs D2 may hand downstream
// (spec §4.12).
const MaxFutures = 3

// futuresOutput is the raw LLM shape for D2.
type futuresOutput struct {
	Specs []struct {
		ScenarioType   string `json:"scenario_type"`
		RushJobID      string `json:"rush_job_id"`
		SlowdownFactor int    `json:"slowdown_factor"`
	} `json:"specs"`
	Justification string `json:"justification"`
}

// FuturesResult is D2's validated output: 1-3 distinct scenario specs and
// the LLM's justification for proposing them.
type FuturesResult struct {
	Specs         []factory.Spec
	Justification string
}

// RunD2 expands D1's intent into a short list of candidate futures worth
// simulating. Every candidate is validated the same way D1 validates its
// own spec; invalid candidates are dropped rather than coerced, duplicates
// are collapsed, and the list is capped at MaxFutures. Unlike D1, any
// gateway failure here is a stage FAILURE: the pipeline still proceeds,
// falling back to the single spec D1 already produced (spec §4.12).
func RunD2(ctx context.Context, deps Deps, cfg *factory.Config, d1Spec factory.Spec) (FuturesResult, stage.Record) {
	model := deps.AgentModel
	rec := stage.Record{
		ID:         "D2",
		Name:       "Scenario expansion",
		Kind:       stage.KindDecision,
		AgentModel: &model,
	}

	prompt := buildFuturesPrompt(cfg, d1Spec)

	var out futuresOutput
	err := deps.Gateway.CallJSON(ctx, prompt, &out, deps.timeout())
	if err != nil {
		rec.Status = stage.StatusFailed
		rec.Errors = []string{stage.TruncateError(fmt.Sprintf("gateway error, falling back to D1 spec: %v", err))}
		result := FuturesResult{Specs: []factory.Spec{d1Spec}, Justification: ""}
		rec.Summary = summarizeFutures(result)
		return result, rec
	}

	var dropped int
	var specs []factory.Spec
	for _, candidate := range out.Specs {
		s := factory.Spec{
			Type:           factory.ScenarioType(candidate.ScenarioType),
			RushJobID:      candidate.RushJobID,
			SlowdownFactor: candidate.SlowdownFactor,
		}
		normalized, ok := factory.NormalizeSpec(cfg, s)
		if !ok {
			dropped++
			continue
		}
		if containsSpec(specs, normalized) {
			continue
		}
		specs = append(specs, normalized)
		if len(specs) == MaxFutures {
			break
		}
	}

	if len(specs) == 0 {
		specs = []factory.Spec{d1Spec}
	}

	result := FuturesResult{Specs: specs, Justification: out.Justification}

	rec.Status = stage.StatusSuccess
	if dropped > 0 {
		rec.Errors = []string{stage.TruncateError(fmt.Sprintf("%d candidate spec(s) dropped as invalid", dropped))}
	}
	rec.Summary = summarizeFutures(result)
	return result, rec
}

func containsSpec(specs []factory.Spec, s factory.Spec) bool {
	for _, existing := range specs {
		if existing.Equal(s) {
			return true
		}
	}
	return false
}

func summarizeFutures(r FuturesResult) map[string]any {
	types := make([]string, 0, len(r.Specs))
	for _, s := range r.Specs {
		types = append(types, string(s.Type))
	}
	return map[string]any{
		"scenario_count":     len(r.Specs),
		"scenario_types":     types,
		"has_justification": strings.TrimSpace(r.Justification) != "",
	}
}

func buildFuturesPrompt(cfg *factory.Config, d1Spec factory.Spec) string {
	var b strings.Builder
	b.WriteString("Given the classified intent below, propose 1 to 3 distinct what-if scenarios worth simulating.\n")
	b.WriteString("Return JSON: {\"specs\":[{\"scenario_type\",\"rush_job_id\",\"slowdown_factor\"}, ...],\"justification\"}.\n")
	b.WriteString(fmt.Sprintf("Classified intent: %+v\n", d1Spec))
	b.WriteString(fmt.Sprintf("Valid job ids: %v\n", cfg.JobIDs()))
	return b.String()
}
