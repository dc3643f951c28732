package decision

import (
	"lineforge/pkg/factory"
	"lineforge/pkg/metrics"
	"lineforge/pkg/stage"
)

// MetricsResult pairs a candidate spec with its computed metrics.
type MetricsResult struct {
	Spec    factory.Spec
	Metrics metrics.Scenario
}

// RunD4 computes aggregate metrics for every simulation D3 produced, each
// against the scenario-mutated factory it was actually simulated on (so
// RUSH_ARRIVES lateness reflects the tightened due time, not the
// original). Pure and deterministic, like D3; never fails (spec §4.14).
func RunD4(sims []SimulationResult) ([]MetricsResult, stage.Record) {
	results := make([]MetricsResult, 0, len(sims))
	for _, sim := range sims {
		results = append(results, MetricsResult{
			Spec:    sim.Spec,
			Metrics: metrics.Compute(sim.ScenarioCfg, sim.Result),
		})
	}

	rec := stage.Record{
		ID:     "D4",
		Name:   "Metrics computation",
		Kind:   stage.KindDecision,
		Status: stage.StatusSuccess,
		Summary: map[string]any{
			"scenario_count": len(results),
		},
	}
	return results, rec
}
