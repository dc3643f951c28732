package onboarding

import (
	"fmt"
	"sort"

	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
)

// RunO4 compares O0's explicit ids against the ids that survived
// normalization. Both coverage ratios must equal 1.0 to pass (spec §4.9).
func RunO4(explicit factory.ExplicitIDs, cfg *factory.Config) stage.Record {
	parsedMachines := make(map[string]bool, len(cfg.Machines))
	for _, m := range cfg.Machines {
		parsedMachines[m.ID] = true
	}
	parsedJobs := make(map[string]bool, len(cfg.Jobs))
	for _, j := range cfg.Jobs {
		parsedJobs[j.ID] = true
	}

	missingMachines := missing(explicit.MachineIDs, toStringMap(parsedMachines))
	missingJobs := missing(explicit.JobIDs, toStringMap(parsedJobs))

	machineRatio := coverageRatio(explicit.MachineIDs, parsedMachines)
	jobRatio := coverageRatio(explicit.JobIDs, parsedJobs)
	full := machineRatio == 1.0 && jobRatio == 1.0

	rec := stage.Record{
		ID:   "O4",
		Name: "Coverage assessment",
		Kind: stage.KindOnboarding,
		Summary: map[string]any{
			"explicit_machine_ids": explicit.SortedMachineIDs(),
			"explicit_job_ids":     explicit.SortedJobIDs(),
			"parsed_machine_ids":   sortedFromSet(parsedMachines),
			"parsed_job_ids":       sortedFromSet(parsedJobs),
			"machine_coverage":     machineRatio,
			"job_coverage":         jobRatio,
			"missing_machines":     missingMachines,
			"missing_jobs":         missingJobs,
			"is_100_percent":       full,
		},
	}

	if !full {
		rec.Status = stage.StatusFailed
		rec.Errors = []string{stage.TruncateError(fmt.Sprintf(
			"%v: missing machines %v, missing jobs %v", ErrCoverageMismatch, missingMachines, missingJobs))}
		return rec
	}

	rec.Status = stage.StatusSuccess
	return rec
}

func coverageRatio(explicit map[string]bool, parsed map[string]bool) float64 {
	if len(explicit) == 0 {
		return 1.0
	}
	hit := 0
	for id := range explicit {
		if parsed[id] {
			hit++
		}
	}
	return float64(hit) / float64(len(explicit))
}

func toStringMap(m map[string]bool) map[string]string {
	out := make(map[string]string, len(m))
	for k := range m {
		out[k] = ""
	}
	return out
}

func sortedFromSet(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
