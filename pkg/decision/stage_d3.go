package decision

import (
	"lineforge/pkg/factory"
	"lineforge/pkg/scheduler"
	"lineforge/pkg/stage"
)

// SimulationResult pairs a candidate spec with the factory it was applied
// to (due times/durations mutated per scenario) and its deterministic
// schedule.
type SimulationResult struct {
	Spec        factory.Spec
	ScenarioCfg *factory.Config
	Result      scheduler.Result
}

// RunD3 applies and simulates every candidate spec from D2, in order. It is
// pure and deterministic: same cfg and specs always produce the same
// schedules, and it never fails (spec §4.13 — no LLM call, no external
// input it doesn't already hold).
func RunD3(cfg *factory.Config, specs []factory.Spec) ([]SimulationResult, stage.Record) {
	results := make([]SimulationResult, 0, len(specs))
	types := make([]string, 0, len(specs))
	for _, spec := range specs {
		scenarioCfg := scheduler.ApplyScenario(cfg, spec)
		results = append(results, SimulationResult{
			Spec:        spec,
			ScenarioCfg: scenarioCfg,
			Result:      scheduler.Simulate(scenarioCfg),
		})
		types = append(types, string(spec.Type))
	}

	rec := stage.Record{
		ID:     "D3",
		Name:   "Deterministic simulation",
		Kind:   stage.KindDecision,
		Status: stage.StatusSuccess,
		Summary: map[string]any{
			"scenario_count": len(results),
			"scenario_types": types,
		},
	}
	return results, rec
}
