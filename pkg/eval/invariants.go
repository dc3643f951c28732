package eval

import (
	"fmt"
	"sort"

	"lineforge/pkg/orchestrator"
	"lineforge/pkg/scheduler"
	"lineforge/pkg/stage"
)

// StandardInvariants returns the quantified invariants from spec §8 that
// apply to every response regardless of case. Boundary/scenario-specific
// invariants belong in the individual test that encodes that scenario,
// not here.
func StandardInvariants() []Invariant {
	return []Invariant{
		{Name: "specs_metrics_length", Check: checkSpecsMetricsLength},
		{Name: "debug_stage_order", Check: checkDebugStageOrder},
		{Name: "metrics_bounds", Check: checkMetricsBounds},
		{Name: "factory_invariants", Check: checkFactoryInvariants},
		{Name: "overall_status_success_iff_all_success", Check: checkOverallStatusSuccess},
		{Name: "used_default_factory_iff_onboarding_failed", Check: checkUsedDefaultFactory},
		{Name: "briefing_non_empty", Check: checkBriefingNonEmpty},
		{Name: "schedule_disjoint", Check: checkScheduleDisjoint},
	}
}

var wantStageOrder = []string{"O0", "O1", "O2", "O3", "O4", "D1", "D2", "D3", "D4", "D5"}

func checkSpecsMetricsLength(r orchestrator.Response) string {
	if len(r.Specs) != len(r.Metrics) {
		return fmt.Sprintf("len(specs)=%d != len(metrics)=%d", len(r.Specs), len(r.Metrics))
	}
	if len(r.Specs) < 1 || len(r.Specs) > 3 {
		return fmt.Sprintf("len(specs)=%d outside [1,3]", len(r.Specs))
	}
	return ""
}

func checkDebugStageOrder(r orchestrator.Response) string {
	if r.Debug == nil {
		return "debug payload missing"
	}
	if len(r.Debug.Stages) != len(wantStageOrder) {
		return fmt.Sprintf("expected %d stage records, got %d", len(wantStageOrder), len(r.Debug.Stages))
	}
	for i, want := range wantStageOrder {
		if r.Debug.Stages[i].ID != want {
			return fmt.Sprintf("stage %d: expected id %s, got %s", i, want, r.Debug.Stages[i].ID)
		}
	}
	return ""
}

func checkMetricsBounds(r orchestrator.Response) string {
	jobIDs := make(map[string]bool, len(r.Factory.Jobs))
	for _, j := range r.Factory.Jobs {
		jobIDs[j.ID] = true
	}
	for i, m := range r.Metrics {
		if m.BottleneckUtilization < 0 || m.BottleneckUtilization > 1 {
			return fmt.Sprintf("metrics[%d]: utilization %f outside [0,1]", i, m.BottleneckUtilization)
		}
		for jobID, late := range m.JobLateness {
			if late < 0 {
				return fmt.Sprintf("metrics[%d]: job %s lateness %d < 0", i, jobID, late)
			}
			if !jobIDs[jobID] {
				return fmt.Sprintf("metrics[%d]: job %s not in factory", i, jobID)
			}
		}
	}
	return ""
}

func checkFactoryInvariants(r orchestrator.Response) string {
	if r.Factory == nil {
		return "factory is nil"
	}
	machineIDs := make(map[string]bool, len(r.Factory.Machines))
	for _, m := range r.Factory.Machines {
		if machineIDs[m.ID] {
			return fmt.Sprintf("duplicate machine id %s", m.ID)
		}
		machineIDs[m.ID] = true
	}
	jobIDs := make(map[string]bool, len(r.Factory.Jobs))
	for _, j := range r.Factory.Jobs {
		if jobIDs[j.ID] {
			return fmt.Sprintf("duplicate job id %s", j.ID)
		}
		jobIDs[j.ID] = true
		if len(j.Steps) == 0 {
			return fmt.Sprintf("job %s has no steps", j.ID)
		}
		if j.DueTimeHour < 0 {
			return fmt.Sprintf("job %s due_time_hour %d < 0", j.ID, j.DueTimeHour)
		}
		for _, s := range j.Steps {
			if !machineIDs[s.MachineID] {
				return fmt.Sprintf("job %s step references unknown machine %s", j.ID, s.MachineID)
			}
			if s.DurationHours < 1 {
				return fmt.Sprintf("job %s step on %s has duration %d < 1", j.ID, s.MachineID, s.DurationHours)
			}
		}
	}
	return ""
}

func checkOverallStatusSuccess(r orchestrator.Response) string {
	if r.Debug == nil {
		return "debug payload missing"
	}
	allSuccess := true
	for _, s := range r.Debug.Stages {
		if s.Status != stage.StatusSuccess {
			allSuccess = false
			break
		}
	}
	isSuccess := r.Debug.OverallStatus == "SUCCESS"
	if allSuccess != isSuccess {
		return fmt.Sprintf("overall_status=%s but all-stages-success=%v", r.Debug.OverallStatus, allSuccess)
	}
	return ""
}

func checkUsedDefaultFactory(r orchestrator.Response) string {
	if r.Debug == nil {
		return "debug payload missing"
	}
	onboardingFailed := false
	for _, s := range r.Debug.Stages {
		if s.Kind == stage.KindOnboarding && s.Status == stage.StatusFailed {
			onboardingFailed = true
			break
		}
	}
	if r.Meta.UsedDefaultFactory != onboardingFailed {
		return fmt.Sprintf("used_default_factory=%v but onboarding-failed=%v", r.Meta.UsedDefaultFactory, onboardingFailed)
	}
	return ""
}

func checkBriefingNonEmpty(r orchestrator.Response) string {
	if r.Briefing == "" {
		return "briefing is empty"
	}
	return ""
}

// checkScheduleDisjoint checks the per-step schedule properties from spec
// §8: every step runs at least 1 hour, no two steps on the same machine
// overlap, and within a job the steps never start before the previous one
// ends. ScheduledSteps for the same job appear in the scheduler's output in
// original step-list order, so consecutive entries after filtering by job
// id are exactly the consecutive steps spec §8 describes.
func checkScheduleDisjoint(r orchestrator.Response) string {
	machineIDs := make(map[string]bool)
	if r.Factory != nil {
		for _, m := range r.Factory.Machines {
			machineIDs[m.ID] = true
		}
	}

	for i, m := range r.Metrics {
		byMachine := make(map[string][]scheduler.ScheduledStep)
		byJob := make(map[string][]scheduler.ScheduledStep)
		for _, s := range m.ScheduledSteps {
			if s.EndHour-s.StartHour < 1 {
				return fmt.Sprintf("metrics[%d]: step %s on %s has duration %d < 1", i, s.JobID, s.MachineID, s.EndHour-s.StartHour)
			}
			if !machineIDs[s.MachineID] {
				return fmt.Sprintf("metrics[%d]: step %s references unknown machine %s", i, s.JobID, s.MachineID)
			}
			byMachine[s.MachineID] = append(byMachine[s.MachineID], s)
			byJob[s.JobID] = append(byJob[s.JobID], s)
		}

		machineNames := make([]string, 0, len(byMachine))
		for id := range byMachine {
			machineNames = append(machineNames, id)
		}
		sort.Strings(machineNames)
		for _, machineID := range machineNames {
			steps := append([]scheduler.ScheduledStep(nil), byMachine[machineID]...)
			sort.Slice(steps, func(a, b int) bool { return steps[a].StartHour < steps[b].StartHour })
			for k := 1; k < len(steps); k++ {
				if steps[k].StartHour < steps[k-1].EndHour {
					return fmt.Sprintf("metrics[%d]: machine %s has overlapping steps [%d,%d) and [%d,%d)",
						i, machineID, steps[k-1].StartHour, steps[k-1].EndHour, steps[k].StartHour, steps[k].EndHour)
				}
			}
		}

		jobNames := make([]string, 0, len(byJob))
		for id := range byJob {
			jobNames = append(jobNames, id)
		}
		sort.Strings(jobNames)
		for _, jobID := range jobNames {
			steps := byJob[jobID]
			for k := 1; k < len(steps); k++ {
				if steps[k].StartHour < steps[k-1].EndHour {
					return fmt.Sprintf("metrics[%d]: job %s step %d starts at %d before prior step ends at %d",
						i, jobID, k, steps[k].StartHour, steps[k-1].EndHour)
				}
			}
		}
	}
	return ""
}
