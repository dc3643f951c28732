package factory

import "fmt"

// Normalize applies the deterministic repair rules of spec §4.2 to a raw,
// LLM-shaped factory and returns either a valid Config or the empty
// marker (ok=false), plus the warnings accumulated along the way. It is
// pure: identical input always yields identical output and warnings, and
// it performs no I/O. Normalize(Normalize(raw)) == Normalize(raw): once a
// Config round-trips through Raw, the same rules leave it unchanged
// because every invariant they enforce is already satisfied.
func Normalize(raw Raw) (cfg *Config, warnings []string) {
	// Rule 6: de-duplicate machine ids, keep first occurrence.
	seenMachine := make(map[string]bool, len(raw.Machines))
	machines := make([]Machine, 0, len(raw.Machines))
	for _, rm := range raw.Machines {
		if seenMachine[rm.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate machine id %q dropped", rm.ID))
			continue
		}
		seenMachine[rm.ID] = true
		machines = append(machines, Machine{ID: rm.ID, Name: rm.Name})
	}

	// Rule 5: cap machines, keep first N in insertion order.
	if len(machines) > MaxMachines {
		warnings = append(warnings, fmt.Sprintf("truncated machines from %d to %d", len(machines), MaxMachines))
		machines = machines[:MaxMachines]
	}
	keptMachine := make(map[string]bool, len(machines))
	for _, m := range machines {
		keptMachine[m.ID] = true
	}

	seenJob := make(map[string]bool, len(raw.Jobs))
	jobs := make([]Job, 0, len(raw.Jobs))
	for _, rj := range raw.Jobs {
		if seenJob[rj.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate job id %q dropped", rj.ID))
			continue
		}
		seenJob[rj.ID] = true

		steps := make([]Step, 0, len(rj.Steps))
		for i, rs := range rj.Steps {
			// Rule 3: drop steps referencing a machine outside the kept set.
			if !keptMachine[rs.MachineID] {
				warnings = append(warnings, fmt.Sprintf("job %q step %d: unknown machine %q dropped", rj.ID, i, rs.MachineID))
				continue
			}

			// Rule 1: coerce duration_hours.
			duration := 1
			if rs.Duration != nil {
				d := int(*rs.Duration)
				if d >= 1 && float64(d) == *rs.Duration {
					duration = d
				} else {
					warnings = append(warnings, fmt.Sprintf("job %q step %d: invalid duration_hours coerced to 1", rj.ID, i))
				}
			} else {
				warnings = append(warnings, fmt.Sprintf("job %q step %d: missing duration_hours coerced to 1", rj.ID, i))
			}

			steps = append(steps, Step{MachineID: rs.MachineID, DurationHours: duration})
		}

		// Rule 5: cap steps per job.
		if len(steps) > MaxStepsPerJob {
			warnings = append(warnings, fmt.Sprintf("job %q: truncated steps from %d to %d", rj.ID, len(steps), MaxStepsPerJob))
			steps = steps[:MaxStepsPerJob]
		}

		// Rule 4: drop jobs with no remaining steps.
		if len(steps) == 0 {
			warnings = append(warnings, fmt.Sprintf("job %q: dropped, no valid steps remain", rj.ID))
			continue
		}

		// Rule 2: coerce due_time_hour.
		due := 24
		if rj.DueTimeHour != nil {
			d := int(*rj.DueTimeHour)
			if d >= 0 && float64(d) == *rj.DueTimeHour {
				due = d
			} else {
				warnings = append(warnings, fmt.Sprintf("job %q: invalid due_time_hour coerced to 24", rj.ID))
			}
		} else {
			warnings = append(warnings, fmt.Sprintf("job %q: missing due_time_hour coerced to 24", rj.ID))
		}

		jobs = append(jobs, Job{ID: rj.ID, Name: rj.Name, Steps: steps, DueTimeHour: due})
	}

	// Rule 5: cap jobs, keep first N in insertion order.
	if len(jobs) > MaxJobs {
		warnings = append(warnings, fmt.Sprintf("truncated jobs from %d to %d", len(jobs), MaxJobs))
		jobs = jobs[:MaxJobs]
	}

	// Rule 7: empty marker.
	if len(machines) == 0 || len(jobs) == 0 {
		return nil, warnings
	}

	return &Config{Machines: machines, Jobs: jobs}, warnings
}
