// Package decision implements the five-stage factory+situation-to-briefing
// pipeline (D1-D5) of spec §4.11-§4.15: intent classification, scenario
// expansion, deterministic simulation, metrics, and briefing.
package decision

import (
	"time"

	"lineforge/pkg/llm"
)

// Deps are the stage dependencies threaded through the decision run.
type Deps struct {
	Gateway      llm.Gateway
	AgentModel   string
	StageTimeout time.Duration
}

func (d Deps) timeout() time.Duration {
	if d.StageTimeout > 0 {
		return d.StageTimeout
	}
	return llm.DefaultTimeout
}
