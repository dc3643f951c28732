// Package eval provides a fixed-corpus adversarial harness that drives
// the orchestrator over a set of cases and checks the invariants from
// spec §8 against each response. Grounded on the teacher's
// test/e2e.TestApp / Run pattern, trimmed from a full HTTP+DB test
// rig down to direct in-process orchestrator calls since this pipeline
// has no persistence layer to spin up.
package eval

import (
	"context"
	"time"

	"lineforge/pkg/llm"
	"lineforge/pkg/orchestrator"
)

// Case is one fixed input pair to run through a freshly built orchestrator.
// Gateway is nil for "LLM down" cases: Run substitutes an empty
// llm.ScriptedGateway, which fails every call with KindTransport and so
// genuinely exercises the fallback path regardless of whether a real API
// key is configured. Invariants lets a case layer scenario-specific checks
// on top of the shared StandardInvariants set.
type Case struct {
	Name               string
	FactoryDescription string
	SituationText      string
	Gateway            llm.Gateway
	Invariants         []Invariant
}

// Invariant checks one property of a completed orchestrator response.
// It returns a non-empty description of the violation, or "" if the
// property holds.
type Invariant struct {
	Name  string
	Check func(orchestrator.Response) string
}

// CaseResult is one case's outcome.
type CaseResult struct {
	Case       Case
	Response   orchestrator.Response
	Violations []string
}

// Passed reports whether every invariant held for this case.
func (r CaseResult) Passed() bool {
	return len(r.Violations) == 0
}

// Report is the outcome of running a full corpus.
type Report struct {
	Results []CaseResult
}

// Passed reports whether every case in the report passed every invariant.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed() {
			return false
		}
	}
	return true
}

// FailureCount returns the number of cases with at least one violation.
func (r Report) FailureCount() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed() {
			n++
		}
	}
	return n
}

// Run builds a fresh orchestrator per case, wired to that case's own
// Gateway (or an empty llm.ScriptedGateway when nil, to force the
// down-path), and runs every case in sequence (the orchestrator itself is
// single-threaded per spec §5, and cases are independent, so this could
// run concurrently — kept sequential for deterministic, readable failure
// output). Each case is checked against its own Invariants.
func Run(ctx context.Context, agentModel string, stageTimeout time.Duration, cases []Case) Report {
	results := make([]CaseResult, 0, len(cases))
	for _, c := range cases {
		gateway := c.Gateway
		if gateway == nil {
			gateway = llm.NewScriptedGateway()
		}
		orch := &orchestrator.Orchestrator{
			Gateway:      gateway,
			AgentModel:   agentModel,
			StageTimeout: stageTimeout,
		}
		resp := orch.Run(ctx, c.FactoryDescription, c.SituationText)

		var violations []string
		for _, inv := range c.Invariants {
			if msg := inv.Check(resp); msg != "" {
				violations = append(violations, inv.Name+": "+msg)
			}
		}

		results = append(results, CaseResult{
			Case:       c,
			Response:   resp,
			Violations: violations,
		})
	}
	return Report{Results: results}
}
