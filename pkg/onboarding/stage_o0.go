package onboarding

import (
	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
)

// RunO0 extracts the ground-truth ids a factory description literally
// mentions. Pure, cannot fail (spec §4.5).
func RunO0(text string) (factory.ExplicitIDs, stage.Record) {
	ids := factory.ExtractExplicitIDs(text)

	rec := stage.Record{
		ID:     "O0",
		Name:   "Explicit ID extraction",
		Kind:   stage.KindOnboarding,
		Status: stage.StatusSuccess,
		Summary: map[string]any{
			"machine_ids":   ids.SortedMachineIDs(),
			"job_ids":       ids.SortedJobIDs(),
			"machine_count": len(ids.MachineIDs),
			"job_count":     len(ids.JobIDs),
		},
	}
	return ids, rec
}
