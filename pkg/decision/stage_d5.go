package decision

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"lineforge/pkg/stage"
)

// briefingOutput is the raw LLM shape for D5.
type briefingOutput struct {
	Markdown string `json:"markdown"`
}

// BriefingInput bundles everything D5 needs to write the briefing.
type BriefingInput struct {
	Metrics            []MetricsResult
	Constraints        string
	Justification      string
	UsedDefaultFactory bool
}

// RunD5 writes the closing Markdown briefing. On gateway failure it falls
// back to a deterministic template built from the metrics already
// computed by D4, so the briefing is always non-empty and structurally
// valid even though the stage itself is marked FAILED (spec §4.15).
func RunD5(ctx context.Context, deps Deps, in BriefingInput) (string, stage.Record) {
	model := deps.AgentModel
	rec := stage.Record{
		ID:         "D5",
		Name:       "Briefing",
		Kind:       stage.KindDecision,
		AgentModel: &model,
	}

	prompt := buildBriefingPrompt(in)

	var out briefingOutput
	err := deps.Gateway.CallJSON(ctx, prompt, &out, deps.timeout())
	if err != nil || strings.TrimSpace(out.Markdown) == "" {
		markdown := deterministicBriefing(in)
		rec.Status = stage.StatusFailed
		if err != nil {
			rec.Errors = []string{stage.TruncateError(fmt.Sprintf("gateway error, using deterministic template: %v", err))}
		} else {
			rec.Errors = []string{"gateway returned empty briefing, using deterministic template"}
		}
		rec.Summary = summarizeBriefing(markdown)
		return markdown, rec
	}

	rec.Status = stage.StatusSuccess
	rec.Summary = summarizeBriefing(out.Markdown)
	return out.Markdown, rec
}

func summarizeBriefing(markdown string) map[string]any {
	return map[string]any{
		"char_count": len(markdown),
		"non_empty":  strings.TrimSpace(markdown) != "",
	}
}

func buildBriefingPrompt(in BriefingInput) string {
	var b strings.Builder
	b.WriteString("Write a Markdown briefing covering: executive summary, feasibility against the constraint, ")
	b.WriteString("per-scenario metrics, recommendations, and caveats.\n")
	b.WriteString("Return JSON: {\"markdown\"}.\n")
	b.WriteString(fmt.Sprintf("Constraint: %s\n", in.Constraints))
	b.WriteString(fmt.Sprintf("Justification for these scenarios: %s\n", in.Justification))
	if in.UsedDefaultFactory {
		b.WriteString("Note: a fallback toy factory was used because onboarding could not extract the real one.\n")
	}
	for _, m := range in.Metrics {
		b.WriteString(fmt.Sprintf("Scenario %+v metrics: %+v\n", m.Spec, m.Metrics))
	}
	return b.String()
}

// deterministicBriefing is the fallback template used on gateway failure.
// It embeds every computed metric verbatim rather than summarizing, so the
// briefing remains fully traceable to D4's output even without an LLM.
func deterministicBriefing(in BriefingInput) string {
	var b strings.Builder
	b.WriteString("# Briefing\n\n")
	b.WriteString("## Executive Summary\n\n")
	b.WriteString(fmt.Sprintf("%d scenario(s) were simulated.", len(in.Metrics)))
	if in.UsedDefaultFactory {
		b.WriteString(" The fallback toy factory was used because the submitted factory description could not be fully extracted.")
	}
	b.WriteString("\n\n## Feasibility\n\n")
	if strings.TrimSpace(in.Constraints) != "" {
		b.WriteString(fmt.Sprintf("Constraint: %s\n\n", in.Constraints))
	} else {
		b.WriteString("No explicit constraint was given.\n\n")
	}
	b.WriteString("## Scenario Metrics\n\n")
	for _, m := range in.Metrics {
		b.WriteString(fmt.Sprintf("### %s\n\n", m.Spec.Type))
		b.WriteString(fmt.Sprintf("- Makespan (hours): %d\n", m.Metrics.MakespanHour))
		b.WriteString(fmt.Sprintf("- Bottleneck machine: %s (utilization %.2f)\n", m.Metrics.BottleneckMachineID, m.Metrics.BottleneckUtilization))
		b.WriteString("- Job lateness (hours):\n")
		for _, id := range sortedMetricJobIDs(m.Metrics.JobLateness) {
			b.WriteString(fmt.Sprintf("  - %s: %d\n", id, m.Metrics.JobLateness[id]))
		}
		b.WriteString("\n")
	}
	b.WriteString("## Recommendations\n\n")
	b.WriteString("Review the scenario with the lowest makespan and lateness against operational constraints before committing.\n\n")
	b.WriteString("## Caveats\n\n")
	b.WriteString("This briefing was generated by a deterministic fallback template because the briefing model call failed.")
	if in.UsedDefaultFactory {
		b.WriteString(" The factory used is the static fallback, not the one described in the request.")
	}
	b.WriteString("\n")
	return b.String()
}

func sortedMetricJobIDs(lateness map[string]int) []string {
	ids := make([]string, 0, len(lateness))
	for id := range lateness {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
