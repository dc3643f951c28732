// Package metrics computes pure aggregations over a scheduler.Result, as
// specified in spec §4.4. Compute is a function: identical inputs always
// produce identical output.
package metrics

import (
	"sort"

	"lineforge/pkg/factory"
	"lineforge/pkg/scheduler"
)

// Scenario is the per-scenario metrics bundle returned to callers. The
// wire shape is exactly the four documented ScenarioMetrics fields;
// ScheduledSteps rides along unexported-from-JSON so the eval harness and
// tests can check per-step schedule invariants (disjoint machine
// intervals, in-job step ordering) without re-simulating.
type Scenario struct {
	MakespanHour          int                       `json:"makespan_hour"`
	JobLateness           map[string]int            `json:"job_lateness"`
	BottleneckMachineID   string                    `json:"bottleneck_machine_id"`
	BottleneckUtilization float64                   `json:"bottleneck_utilization"`
	ScheduledSteps        []scheduler.ScheduledStep `json:"-"`
}

// Compute derives Scenario metrics from a factory and one simulation
// result. Invariants asserted here mirror spec §4.4: every job in cfg has
// a lateness entry, all lateness >= 0, utilization in [0,1].
func Compute(cfg *factory.Config, result scheduler.Result) Scenario {
	lateness := make(map[string]int, len(cfg.Jobs))
	for _, j := range cfg.Jobs {
		completion := result.JobCompletionTimes[j.ID]
		late := completion - j.DueTimeHour
		if late < 0 {
			late = 0
		}
		lateness[j.ID] = late
	}

	busyHours := make(map[string]int, len(cfg.Machines))
	for _, m := range cfg.Machines {
		busyHours[m.ID] = 0
	}
	for _, s := range result.ScheduledSteps {
		busyHours[s.MachineID] += s.EndHour - s.StartHour
	}

	bottleneck := bottleneckMachineID(busyHours)

	utilization := 0.0
	if result.MakespanHour > 0 {
		utilization = float64(busyHours[bottleneck]) / float64(result.MakespanHour)
		if utilization > 1.0 {
			utilization = 1.0
		}
		if utilization < 0.0 {
			utilization = 0.0
		}
	}

	return Scenario{
		MakespanHour:          result.MakespanHour,
		JobLateness:           lateness,
		BottleneckMachineID:   bottleneck,
		BottleneckUtilization: utilization,
		ScheduledSteps:        result.ScheduledSteps,
	}
}

// bottleneckMachineID picks the machine with the greatest busy-hours,
// ties broken by lexicographic machine id, over a deterministic
// (sorted-key) scan so map iteration order never affects the result.
func bottleneckMachineID(busyHours map[string]int) string {
	ids := make([]string, 0, len(busyHours))
	for id := range busyHours {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := ""
	bestHours := -1
	for _, id := range ids {
		if busyHours[id] > bestHours {
			bestHours = busyHours[id]
			best = id
		}
	}
	return best
}
