package decision

import (
	"context"

	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
)

// Result is the outcome of running the full decision pipeline.
type Result struct {
	Metrics  []MetricsResult
	Briefing string
	Records  []stage.Record
}

// Run sequences D1 through D5 over a factory that onboarding already
// produced (real or toy-factory fallback — the decision pipeline does not
// care which). Unlike onboarding, decision stages never skip one another:
// each has its own documented degradation (coerce to BASELINE, fall back
// to the prior stage's specs, fall back to a deterministic template), so
// the walk always reaches D5 (spec §4.11-§4.15).
func Run(ctx context.Context, deps Deps, cfg *factory.Config, situationText string, usedDefaultFactory bool) Result {
	var records []stage.Record

	intent, recD1 := RunD1(ctx, deps, cfg, situationText)
	records = append(records, recD1)

	futures, recD2 := RunD2(ctx, deps, cfg, intent.Spec)
	records = append(records, recD2)

	sims, recD3 := RunD3(cfg, futures.Specs)
	records = append(records, recD3)

	metricsResults, recD4 := RunD4(sims)
	records = append(records, recD4)

	briefing, recD5 := RunD5(ctx, deps, BriefingInput{
		Metrics:            metricsResults,
		Constraints:        intent.Constraints,
		Justification:      futures.Justification,
		UsedDefaultFactory: usedDefaultFactory,
	})
	records = append(records, recD5)

	return Result{
		Metrics:  metricsResults,
		Briefing: briefing,
		Records:  records,
	}
}
