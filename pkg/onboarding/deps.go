// Package onboarding implements the five-stage text-to-factory pipeline
// (O0-O4) of spec §4.5-§4.10: regex id extraction, coarse LLM structure,
// fine LLM extraction, pure normalization, and a coverage gate that
// enforces every explicitly-mentioned id survived parsing.
package onboarding

import (
	"time"

	"lineforge/pkg/llm"
)

// Deps are the stage dependencies threaded through the onboarding run.
// AgentModel is attached to every LLM-backed stage's record (spec §3:
// "provider/model tag or null for deterministic stages").
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
