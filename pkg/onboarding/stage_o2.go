package onboarding

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
)

// RunO2 asks the model to fill in steps, durations and due times for the
// O1 entity set. Durations/due times may be fractional or missing in the
// raw output; O3 repairs them. Every step's machine must come from O1's
// machine set and every job must come from O1's job set, or the stage
// fails (spec §4.7).
func RunO2(ctx context.Context, deps Deps, text string, coarse Coarse) (factory.Raw, stage.Record) {
	model := deps.AgentModel
	rec := stage.Record{
		ID:         "O2",
		Name:       "Fine extraction",
		Kind:       stage.KindOnboarding,
		AgentModel: &model,
	}

	prompt := buildFinePrompt(text, coarse)

	var raw factory.Raw
	if err := deps.Gateway.CallJSON(ctx, prompt, &raw, deps.timeout()); err != nil {
		rec.Status = stage.StatusFailed
		rec.Errors = []string{stage.TruncateError(err.Error())}
		return factory.Raw{}, rec
	}

	var badMachines, badJobs []string
	machinesWithSteps := 0
	totalSteps := 0
	for _, j := range raw.Jobs {
		if _, ok := coarse.JobIDs[j.ID]; !ok {
			badJobs = append(badJobs, j.ID)
			continue
		}
		stepMachines := make(map[string]bool)
		for _, s := range j.Steps {
			totalSteps++
			if _, ok := coarse.MachineIDs[s.MachineID]; !ok {
				badMachines = append(badMachines, s.MachineID)
				continue
			}
			stepMachines[s.MachineID] = true
		}
		machinesWithSteps += len(stepMachines)
	}

	if len(badMachines) > 0 || len(badJobs) > 0 {
		sort.Strings(badMachines)
		sort.Strings(badJobs)
		rec.Status = stage.StatusFailed
		rec.Errors = []string{stage.TruncateError(fmt.Sprintf(
			"%v: unknown machines %v, unknown jobs %v", ErrCoverageMismatchFine, badMachines, badJobs))}
		rec.Summary = map[string]any{
			"jobs_with_steps": len(raw.Jobs) - len(badJobs),
			"total_steps":     totalSteps,
		}
		return raw, rec
	}

	// O1's machine set is authoritative; fill raw.Machines from it rather
	// than trust O2's restatement, so O3 normalizes against ids that
	// already passed the O1 coverage gate.
	raw.Machines = make([]factory.RawMachine, 0, len(coarse.MachineIDs))
	ids := make([]string, 0, len(coarse.MachineIDs))
	for id := range coarse.MachineIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		raw.Machines = append(raw.Machines, factory.RawMachine{ID: id, Name: coarse.MachineIDs[id]})
	}

	rec.Status = stage.StatusSuccess
	rec.Summary = map[string]any{
		"machines_with_steps": machinesWithSteps,
		"jobs_with_steps":     len(raw.Jobs),
		"total_steps":         totalSteps,
	}
	return raw, rec
}

func buildFinePrompt(text string, coarse Coarse) string {
	machineIDs := make([]string, 0, len(coarse.MachineIDs))
	for id := range coarse.MachineIDs {
		machineIDs = append(machineIDs, id)
	}
	sort.Strings(machineIDs)
	jobIDs := make([]string, 0, len(coarse.JobIDs))
	for id := range coarse.JobIDs {
		jobIDs = append(jobIDs, id)
	}
	sort.Strings(jobIDs)

	var b strings.Builder
	b.WriteString("For each job below, extract its ordered steps (machine_id, duration_hours) and due_time_hour.\n")
	b.WriteString("Return JSON: {\"machines\": [{\"id\",\"name\"}], \"jobs\": [{\"id\",\"name\",\"steps\":[{\"machine_id\",\"duration_hours\"}],\"due_time_hour\"}]}.\n")
	b.WriteString(fmt.Sprintf("Machines: %v\n", machineIDs))
	b.WriteString(fmt.Sprintf("Jobs: %v\n", jobIDs))
	b.WriteString("Factory description:\n")
	b.WriteString(text)
	return b.String()
}
