package factory

import (
	"regexp"
	"sort"
)

var (
	machineIDPattern = regexp.MustCompile(`\bM(?:\d+|_\w+)\b`)
	jobIDPattern     = regexp.MustCompile(`\bJ(?:\d+|_\w+)\b`)
)

// ExplicitIDs is the ground-truth set of machine/job ids a factory
// description literally mentions, established by O0 before any LLM sees
// the text.
type ExplicitIDs struct {
	MachineIDs map[string]bool
	JobIDs     map[string]bool
}

// ExtractExplicitIDs runs the O0 regex pass over the raw factory
// description. Pure, cannot fail.
func ExtractExplicitIDs(text string) ExplicitIDs {
	ids := ExplicitIDs{
		MachineIDs: make(map[string]bool),
		JobIDs:     make(map[string]bool),
	}
	for _, m := range machineIDPattern.FindAllString(text, -1) {
		ids.MachineIDs[m] = true
	}
	for _, j := range jobIDPattern.FindAllString(text, -1) {
		ids.JobIDs[j] = true
	}
	return ids
}

// SortedMachineIDs returns the machine ids as a sorted slice, for stable
// diagnostics (spec §6 "all id sets serialized as sorted arrays").
func (e ExplicitIDs) SortedMachineIDs() []string { return sortedKeys(e.MachineIDs) }

// SortedJobIDs returns the job ids as a sorted slice.
func (e ExplicitIDs) SortedJobIDs() []string { return sortedKeys(e.JobIDs) }

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
