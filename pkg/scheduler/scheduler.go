// Package scheduler implements the deterministic Earliest-Due-Date
// job-shop schedule described in spec §4.3. It is pure: for identical
// (factory, spec) inputs it produces byte-identical output on every run,
// with no floating-point arithmetic anywhere in the hot path.
package scheduler

import (
	"sort"

	"lineforge/pkg/factory"
)

// ScheduledStep is one placed unit of work.
type ScheduledStep struct {
	JobID     string `json:"job_id"`
	MachineID string `json:"machine_id"`
	StartHour int    `json:"start_hour"`
	EndHour   int    `json:"end_hour"`
}

// Result is the outcome of simulating one scenario spec against a factory.
type Result struct {
	ScheduledSteps     []ScheduledStep `json:"scheduled_steps"`
	JobCompletionTimes map[string]int  `json:"job_completion_times"`
	MakespanHour       int             `json:"makespan_hour"`
}

// ApplyScenario produces the effective factory for spec, deep-copying
// before any mutation so the original factory is never touched (§4.3
// step 1, §9 design note on scenario mutation). spec is assumed already
// normalized against cfg (see factory.NormalizeSpec); the
// scheduler never second-guesses an invalid spec.
func ApplyScenario(cfg *factory.Config, spec factory.Spec) *factory.Config {
	effective := cfg.DeepCopy()

	switch spec.Type {
	case factory.ScenarioRushArrives:
		minDue := cfg.MinDueTimeHour()
		tightened := minDue - 1
		if tightened < 0 {
			tightened = 0
		}
		for i := range effective.Jobs {
			if effective.Jobs[i].ID == spec.RushJobID {
				effective.Jobs[i].DueTimeHour = tightened
				break
			}
		}
	case factory.ScenarioM2Slowdown:
		for i := range effective.Jobs {
			for k, s := range effective.Jobs[i].Steps {
				if s.MachineID == "M2" {
					effective.Jobs[i].Steps[k].DurationHours = s.DurationHours * spec.SlowdownFactor
				}
			}
		}
	case factory.ScenarioBaseline:
		// identity
	}

	return effective
}

// Simulate runs the EDD greedy-earliest-fit schedule against cfg, which
// the caller is expected to have already passed through ApplyScenario.
// Preconditions (non-empty factory, every step referencing a real
// machine) are guaranteed upstream by normalization; Simulate never
// fails.
func Simulate(cfg *factory.Config) Result {
	effective := cfg

	order := make([]factory.Job, len(effective.Jobs))
	copy(order, effective.Jobs)
	sort.Slice(order, func(i, j int) bool {
		if order[i].DueTimeHour != order[j].DueTimeHour {
			return order[i].DueTimeHour < order[j].DueTimeHour
		}
		return order[i].ID < order[j].ID
	})

	machineFreeAt := make(map[string]int, len(effective.Machines))
	for _, m := range effective.Machines {
		machineFreeAt[m.ID] = 0
	}

	completion := make(map[string]int, len(order))
	var scheduled []ScheduledStep

	for _, job := range order {
		jobFreeAt := 0
		for _, step := range job.Steps {
			start := machineFreeAt[step.MachineID]
			if jobFreeAt > start {
				start = jobFreeAt
			}
			end := start + step.DurationHours

			scheduled = append(scheduled, ScheduledStep{
				JobID:     job.ID,
				MachineID: step.MachineID,
				StartHour: start,
				EndHour:   end,
			})

			machineFreeAt[step.MachineID] = end
			jobFreeAt = end
		}
		completion[job.ID] = jobFreeAt
	}

	makespan := 0
	for _, c := range completion {
		if c > makespan {
			makespan = c
		}
	}

	return Result{
		ScheduledSteps:     scheduled,
		JobCompletionTimes: completion,
		MakespanHour:       makespan,
	}
}
