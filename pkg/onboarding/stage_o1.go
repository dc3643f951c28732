package onboarding

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"lineforge/pkg/factory"
	"lineforge/pkg/stage"
)

// idName is the coarse entity shape O1 extracts: an id and a display name,
// no steps, no durations, no due times.
type idName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type coarseStructure struct {
	Machines []idName `json:"machines"`
	Jobs     []idName `json:"jobs"`
}

// Coarse is the validated O1 output threaded into O2. Values are display
// names (possibly empty); presence of a key is what O2's coverage check
// tests against.
type Coarse struct {
	MachineIDs map[string]string
	JobIDs     map[string]string
}

// RunO1 asks the model to enumerate every machine/job the text names,
// constrained to the explicit id set established by O0, then checks the
// result is a superset of that ground truth (spec §4.6). An empty or
// whitespace-only description fails the stage without calling the model.
func RunO1(ctx context.Context, deps Deps, text string, explicit factory.ExplicitIDs) (Coarse, stage.Record) {
	model := deps.AgentModel
	rec := stage.Record{
		ID:         "O1",
		Name:       "Coarse structure extraction",
		Kind:       stage.KindOnboarding,
		AgentModel: &model,
	}

	if strings.TrimSpace(text) == "" {
		rec.Status = stage.StatusFailed
		rec.Errors = []string{"empty factory description"}
		return Coarse{}, rec
	}

	prompt := buildCoarsePrompt(text, explicit)

	var out coarseStructure
	if err := deps.Gateway.CallJSON(ctx, prompt, &out, deps.timeout()); err != nil {
		rec.Status = stage.StatusFailed
		rec.Errors = []string{stage.TruncateError(err.Error())}
		return Coarse{}, rec
	}

	coarse := Coarse{
		MachineIDs: make(map[string]string, len(out.Machines)),
		JobIDs:     make(map[string]string, len(out.Jobs)),
	}
	for _, m := range out.Machines {
		coarse.MachineIDs[m.ID] = m.Name
	}
	for _, j := range out.Jobs {
		coarse.JobIDs[j.ID] = j.Name
	}

	missingMachines := missing(explicit.MachineIDs, coarse.MachineIDs)
	missingJobs := missing(explicit.JobIDs, coarse.JobIDs)
	if len(missingMachines) > 0 || len(missingJobs) > 0 {
		rec.Status = stage.StatusFailed
		rec.Errors = []string{stage.TruncateError(fmt.Sprintf(
			"%v: missing machines %v, missing jobs %v",
			ErrCoverageMismatchCoarse, missingMachines, missingJobs))}
		rec.Summary = map[string]any{
			"machine_count":    len(coarse.MachineIDs),
			"job_count":        len(coarse.JobIDs),
			"missing_machines": missingMachines,
			"missing_jobs":     missingJobs,
		}
		return coarse, rec
	}

	rec.Status = stage.StatusSuccess
	rec.Summary = map[string]any{
		"machine_count": len(coarse.MachineIDs),
		"job_count":     len(coarse.JobIDs),
	}
	return coarse, rec
}

func missing(required map[string]bool, have map[string]string) []string {
	var out []string
	for id := range required {
		if _, ok := have[id]; !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func buildCoarsePrompt(text string, explicit factory.ExplicitIDs) string {
	var b strings.Builder
	b.WriteString("You are extracting a coarse factory structure from a free-form description.\n")
	b.WriteString("Return JSON with \"machines\": [{\"id\",\"name\"}] and \"jobs\": [{\"id\",\"name\"}].\n")
	b.WriteString("You MUST enumerate every one of these required ids, and MUST NOT invent ids not present in the text.\n")
	b.WriteString(fmt.Sprintf("Required machine ids: %v\n", explicit.SortedMachineIDs()))
	b.WriteString(fmt.Sprintf("Required job ids: %v\n", explicit.SortedJobIDs()))
	b.WriteString("Factory description:\n")
	b.WriteString(text)
	return b.String()
}
